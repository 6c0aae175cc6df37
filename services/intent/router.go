// Package intent classifies each user turn onto the portfolio or calendar path.
package intent

import (
	"context"
	"errors"
	"strings"
	"time"

	"folio/models"
	ai "folio/services/intelligence"
	"folio/services/slots"

	"go.uber.org/zap"
)

var calendarKeywords = []string{
	"book", "schedule", "meeting", "call", "calendar", "appointment", "meet",
}

// Router maps a turn to exactly one intent. Classification is read-only over
// session state.
type Router struct {
	model     ai.ModelClient
	extractor *slots.Extractor
	logger    *zap.Logger
}

// NewRouter builds a router. A nil model client is allowed; classification
// then falls back to keyword matching.
func NewRouter(model ai.ModelClient, extractor *slots.Extractor, logger *zap.Logger) *Router {
	return &Router{model: model, extractor: extractor, logger: logger}
}

// Classify picks the intent for the newest message. An open slot-filling flow
// biases the turn onto the calendar path: while a draft is collecting, a bare
// name, email or date fragment counts as calendar even with no scheduling
// language at all. A message that supplies nothing for the draft (an
// unrelated question mid-flow) is still classified on its own content, so an
// interruption can reach the portfolio path without abandoning the draft.
func (r *Router) Classify(ctx context.Context, state *models.SessionState, message string, now time.Time) models.Intent {
	if state.Draft != nil && state.Draft.Status == models.DraftCollecting && r.continuesFlow(state, message, now) {
		return models.IntentCalendar
	}

	if r.model == nil {
		return keywordIntent(message)
	}

	result, err := r.model.Classify(ctx, state.Turns, message)
	if err != nil {
		if errors.Is(err, ai.ErrAbstain) {
			return models.IntentPortfolio
		}
		r.logger.Warn("intent classification failed, using keyword fallback", zap.Error(err))
		return keywordIntent(message)
	}
	return result
}

// continuesFlow reports whether the message carries anything the open draft
// can use. The extractor probe is read-only: the draft copy is discarded.
func (r *Router) continuesFlow(state *models.SessionState, message string, now time.Time) bool {
	if keywordIntent(message) == models.IntentCalendar {
		return true
	}
	draft := *state.Draft
	probe := r.extractor.Extract(state.Turns, message, draft, now)
	return probe.Name != draft.Name || probe.Email != draft.Email || probe.Start != draft.Start
}

func keywordIntent(message string) models.Intent {
	lower := strings.ToLower(message)
	for _, kw := range calendarKeywords {
		if strings.Contains(lower, kw) {
			return models.IntentCalendar
		}
	}
	return models.IntentPortfolio
}
