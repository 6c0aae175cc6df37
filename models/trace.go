package models

import "time"

// TurnTrace captures routing and latency diagnostics for one processed turn.
// Traces are archived best-effort; losing one never fails the turn.
type TurnTrace struct {
	ID        string    `json:"id" bson:"id"`
	SessionID string    `json:"sessionId" bson:"sessionId"`
	Intent    string    `json:"intentDetected" bson:"intentDetected"`
	Tool      string    `json:"toolSelected,omitempty" bson:"toolSelected,omitempty"`
	State     string    `json:"state" bson:"state"`
	LatencyMS int64     `json:"totalLatencyMs" bson:"totalLatencyMs"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
