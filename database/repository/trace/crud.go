package traceRepo

import (
	"context"
	"time"

	"folio/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new turn trace and returns its ID.
func (r *mongoTraceRepo) Create(ctx context.Context, trace models.TurnTrace) (string, error) {
	if trace.ID == "" {
		trace.ID = uuid.New().String()
	}
	if trace.CreatedAt.IsZero() {
		trace.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, trace)
	if err != nil {
		return "", err
	}
	return trace.ID, nil
}

// GetBySessionID fetches the most recent traces for a session, newest first.
func (r *mongoTraceRepo) GetBySessionID(ctx context.Context, sessionID string, limit int64) ([]models.TurnTrace, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var traces []models.TurnTrace
	if err := cursor.All(ctx, &traces); err != nil {
		return nil, err
	}
	return traces, nil
}
