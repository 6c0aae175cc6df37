package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"folio/models"
	ai "folio/services/intelligence"
	"folio/services/slots"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var refNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type stubModel struct {
	intent models.Intent
	err    error
}

func (s *stubModel) Classify(ctx context.Context, history []models.Turn, message string) (models.Intent, error) {
	return s.intent, s.err
}

func (s *stubModel) Invoke(ctx context.Context, prompt string) (*ai.ModelReply, error) {
	return &ai.ModelReply{}, nil
}

func newTestRouter(model ai.ModelClient) *Router {
	return NewRouter(model, slots.NewExtractor(), zap.NewNop())
}

func collectingState() *models.SessionState {
	state := models.NewSessionState("s1")
	state.Phase = models.PhaseCollecting
	state.Draft = &models.BookingDraft{Name: "Ada", Status: models.DraftCollecting}
	return state
}

func TestClassifyContinuityBiasOverridesContent(t *testing.T) {
	// The model would say portfolio, but a message supplying the missing time
	// stays on the calendar path even with no scheduling language.
	r := newTestRouter(&stubModel{intent: models.IntentPortfolio})

	got := r.Classify(context.Background(), collectingState(), "tomorrow at 3pm", refNow)

	assert.Equal(t, models.IntentCalendar, got)
}

func TestClassifyInterruptionMidFlowReachesPortfolio(t *testing.T) {
	// An unrelated question that feeds no slot is classified on its own
	// content; the open draft does not trap the user in the booking flow.
	r := newTestRouter(&stubModel{intent: models.IntentPortfolio})

	got := r.Classify(context.Background(), collectingState(), "what did you build Airgpt with?", refNow)

	assert.Equal(t, models.IntentPortfolio, got)
}

func TestClassifyDelegatesToModel(t *testing.T) {
	r := newTestRouter(&stubModel{intent: models.IntentCalendar})

	got := r.Classify(context.Background(), models.NewSessionState("s1"), "can we talk next week?", refNow)

	assert.Equal(t, models.IntentCalendar, got)
}

func TestClassifyAbstainDefaultsToPortfolio(t *testing.T) {
	r := newTestRouter(&stubModel{err: ai.ErrAbstain})

	got := r.Classify(context.Background(), models.NewSessionState("s1"), "hmm", refNow)

	assert.Equal(t, models.IntentPortfolio, got)
}

func TestClassifyModelErrorFallsBackToKeywords(t *testing.T) {
	r := newTestRouter(&stubModel{err: errors.New("rpc timeout")})

	assert.Equal(t, models.IntentCalendar,
		r.Classify(context.Background(), models.NewSessionState("s1"), "I'd like to book a call", refNow))
	assert.Equal(t, models.IntentPortfolio,
		r.Classify(context.Background(), models.NewSessionState("s1"), "what projects have you built?", refNow))
}

func TestClassifyWithoutModelUsesKeywords(t *testing.T) {
	r := newTestRouter(nil)

	assert.Equal(t, models.IntentCalendar,
		r.Classify(context.Background(), models.NewSessionState("s1"), "let's schedule something", refNow))
	assert.Equal(t, models.IntentPortfolio,
		r.Classify(context.Background(), models.NewSessionState("s1"), "tell me about yourself", refNow))
}
