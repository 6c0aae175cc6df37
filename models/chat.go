package models

import "time"

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id" binding:"required"` // opaque conversation identifier
	Message   string `json:"message" binding:"required"`    // user's message (typed text)

	// ReferenceTime anchors relative phrases like "next Tuesday at 3pm".
	// Defaults to server time when omitted.
	ReferenceTime *time.Time `json:"reference_time,omitempty"`
}

// ChatResponse is what the handler returns to the frontend.
type ChatResponse struct {
	SessionID string    `json:"session_id"`
	Reply     string    `json:"reply"`           // natural-language reply
	State     Phase     `json:"state"`           // session state summary after this turn
	Trace     TurnTrace `json:"trace,omitempty"` // routing and latency diagnostics
}
