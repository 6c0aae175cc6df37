package slots

import (
	"testing"
	"time"

	"folio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday, Jan 1 2024, 09:00 UTC.
var refNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestExtractEmailIntoPartialDraft(t *testing.T) {
	e := NewExtractor()
	draft := models.BookingDraft{Name: "Ada", Status: models.DraftCollecting}

	got := e.Extract(nil, "my email is ada@example.com", draft, refNow)

	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Nil(t, got.Start)
	assert.Equal(t, models.DraftCollecting, got.Status)
}

func TestExtractInvalidEmailLeftUnset(t *testing.T) {
	e := NewExtractor()

	got := e.Extract(nil, "reach me at bob@nope", models.BookingDraft{}, refNow)

	assert.Empty(t, got.Email)
	assert.Equal(t, models.DraftCollecting, got.Status)
}

func TestExtractNeverOverwritesValidField(t *testing.T) {
	e := NewExtractor()
	draft := models.BookingDraft{Email: "ada@example.com"}

	got := e.Extract(nil, "also try other@example.com", draft, refNow)

	assert.Equal(t, "ada@example.com", got.Email)
}

func TestExtractNameFromIntroduction(t *testing.T) {
	e := NewExtractor()

	got := e.Extract(nil, "Hi, my name is Ada Lovelace and my email is ada@example.com", models.BookingDraft{}, refNow)

	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
}

func TestExtractNameFromBareAnswer(t *testing.T) {
	e := NewExtractor()
	history := []models.Turn{
		{Role: models.RoleUser, Text: "I'd like to book a call"},
		{Role: models.RoleAssistant, Text: "Happy to set up a call. Could you share your name?"},
	}

	got := e.Extract(history, "Grace Hopper", models.BookingDraft{}, refNow)

	assert.Equal(t, "Grace Hopper", got.Name)
}

func TestExtractBareDateAnswerIsNotAName(t *testing.T) {
	e := NewExtractor()
	history := []models.Turn{
		{Role: models.RoleAssistant, Text: "Could you share your name and a time that works for you?"},
	}

	got := e.Extract(history, "tomorrow", models.BookingDraft{}, refNow)

	assert.Empty(t, got.Name)
	require.NotNil(t, got.Start)
}

func TestExtractRelativeTimeDeterministic(t *testing.T) {
	e := NewExtractor()

	got := e.Extract(nil, "let's talk next Tuesday at 3pm", models.BookingDraft{}, refNow)

	require.NotNil(t, got.Start)
	assert.Equal(t, time.Tuesday, got.Start.Weekday())
	assert.Equal(t, 15, got.Start.Hour())
	assert.True(t, got.Start.After(refNow))
}

func TestExtractExplicitTimestamp(t *testing.T) {
	e := NewExtractor()

	got := e.Extract(nil, "2024-01-05T10:00", models.BookingDraft{}, refNow)

	require.NotNil(t, got.Start)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), *got.Start)
}

func TestExtractAllSlotsYieldsReady(t *testing.T) {
	e := NewExtractor()

	got := e.Extract(nil, "My name is Ada Lovelace, email ada@example.com, tomorrow at 3pm", models.BookingDraft{}, refNow)

	assert.Equal(t, models.DraftReady, got.Status)
	assert.True(t, got.Complete())
}

func TestExtractIsIdempotent(t *testing.T) {
	e := NewExtractor()
	msg := "My name is Ada Lovelace, email ada@example.com, tomorrow at 3pm"

	first := e.Extract(nil, msg, models.BookingDraft{}, refNow)
	second := e.Extract(nil, msg, first, refNow)

	assert.Equal(t, first, second)
}

func TestResolveTimeRejectsAmbiguousText(t *testing.T) {
	e := NewExtractor()

	_, ok := e.ResolveTime("whenever works", refNow)

	assert.False(t, ok)
}
