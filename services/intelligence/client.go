// Package ai wraps the language-model collaborator. The rest of the system
// treats it as a black box: prompt and context in, plain text or a structured
// tool call out.
package ai

import (
	"context"
	"errors"

	"folio/models"
)

// ErrAbstain is returned by Classify when the model output matches neither
// closed intent value. Callers decide the fallback; the router defaults to
// the portfolio path.
var ErrAbstain = errors.New("classifier abstained")

// ModelReply is a single model response. The same call site may yield plain
// text, a tool call, or both.
type ModelReply struct {
	Text     string
	ToolCall *models.RawToolCall
}

// ModelClient is the inference collaborator.
type ModelClient interface {
	// Classify maps the newest message (with history for context) onto one of
	// the two closed intent values.
	Classify(ctx context.Context, history []models.Turn, message string) (models.Intent, error)
	// Invoke runs a free-form generation that may emit a tool call.
	Invoke(ctx context.Context, prompt string) (*ModelReply, error)
}
