package repair

import (
	"testing"
	"time"

	"folio/models"
	"folio/services/slots"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newProxy() *Proxy {
	return NewProxy(slots.NewExtractor(), 30*time.Minute)
}

func TestRepairRecognizesFieldAliases(t *testing.T) {
	p := newProxy()
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"attendee_email": "bob@x.com",
			"full_name":      "Bob",
			"when":           "2024-01-01T10:00",
		},
	}

	call, defect := p.Repair(raw, models.BookingDraft{}, refNow)

	require.Nil(t, defect)
	assert.Equal(t, "Bob", call.Name)
	assert.Equal(t, "bob@x.com", call.Email)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), call.Start)
	assert.Equal(t, call.Start.Add(30*time.Minute), call.End)
}

func TestRepairPrefersValidatedDraftOverRawRestatement(t *testing.T) {
	p := newProxy()
	start := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	draft := models.BookingDraft{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
		Start: &start,
	}
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"name":  "A. Lovelace",
			"email": "wrong@example.com",
			"time":  "2024-06-06T06:00",
		},
	}

	call, defect := p.Repair(raw, draft, refNow)

	require.Nil(t, defect)
	assert.Equal(t, "Ada Lovelace", call.Name)
	assert.Equal(t, "ada@example.com", call.Email)
	assert.Equal(t, start, call.Start)
}

func TestRepairStripsExtraneousNesting(t *testing.T) {
	p := newProxy()
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"arguments": map[string]any{
				"guest_email": "bob@x.com",
				"details": map[string]any{
					"attendee":  "Bob",
					"startTime": "2024-01-03T11:00",
				},
			},
		},
	}

	call, defect := p.Repair(raw, models.BookingDraft{}, refNow)

	require.Nil(t, defect)
	assert.Equal(t, "Bob", call.Name)
	assert.Equal(t, "bob@x.com", call.Email)
	assert.Equal(t, time.Date(2024, 1, 3, 11, 0, 0, 0, time.UTC), call.Start)
}

func TestRepairCoercesUnixSeconds(t *testing.T) {
	p := newProxy()
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"name":  "Bob",
			"email": "bob@x.com",
			"time":  float64(1704186000), // 2024-01-02T09:00:00Z
		},
	}

	call, defect := p.Repair(raw, models.BookingDraft{}, refNow)

	require.Nil(t, defect)
	assert.Equal(t, int64(1704186000), call.Start.Unix())
}

func TestRepairRejectsInvalidEmailFromRawCall(t *testing.T) {
	p := newProxy()
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"name":  "Bob",
			"email": "not-an-email",
			"time":  "2024-01-03T11:00",
		},
	}

	call, defect := p.Repair(raw, models.BookingDraft{}, refNow)

	require.Nil(t, call)
	require.NotNil(t, defect)
	assert.Equal(t, []string{"email"}, defect.Missing)
}

func TestRepairNamesEveryUnrecoverableField(t *testing.T) {
	p := newProxy()

	call, defect := p.Repair(models.RawToolCall{Name: "book_meeting"}, models.BookingDraft{}, refNow)

	require.Nil(t, call)
	require.NotNil(t, defect)
	assert.Equal(t, []string{"name", "email", "time"}, defect.Missing)
	assert.Contains(t, defect.Error(), "name, email, time")
}

func TestRepairIsAStableFixedPoint(t *testing.T) {
	p := newProxy()
	raw := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"full_name": "Bob",
			"email":     "bob@x.com",
			"when":      "2024-01-03T11:00",
		},
	}

	first, defect := p.Repair(raw, models.BookingDraft{}, refNow)
	require.Nil(t, defect)

	// Re-express the repaired call as a raw call with canonical keys.
	roundTrip := models.RawToolCall{
		Name: "book_meeting",
		Args: map[string]any{
			"name":  first.Name,
			"email": first.Email,
			"time":  first.Start.Format(time.RFC3339),
		},
	}
	second, defect := p.Repair(roundTrip, models.BookingDraft{}, refNow)
	require.Nil(t, defect)
	assert.Equal(t, first, second)
}
