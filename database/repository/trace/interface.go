package traceRepo

import (
	"context"

	"folio/database"
	"folio/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type TurnTraceRepository interface {
	Create(ctx context.Context, trace models.TurnTrace) (string, error)
	GetBySessionID(ctx context.Context, sessionID string, limit int64) ([]models.TurnTrace, error)
}

type mongoTraceRepo struct {
	coll *mongo.Collection
}

// NewMongoTraceRepo returns a new TurnTraceRepository instance using MongoDB.
func NewMongoTraceRepo() TurnTraceRepository {
	db := database.MongoClient.Database("folio")
	return &mongoTraceRepo{
		coll: db.Collection("turn_traces"),
	}
}
