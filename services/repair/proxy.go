// Package repair normalizes untrusted tool calls emitted by the model into
// validated booking requests. It is the only path between raw model output
// and the calendar backend: every field is proven valid or named in a defect.
package repair

import (
	"fmt"
	"strings"
	"time"

	"folio/models"
	"folio/services/slots"
)

// Defect names the booking fields the proxy could not recover. It is never
// shown to the user as-is; the orchestrator turns it into a clarifying
// question for exactly these fields.
type Defect struct {
	Missing []string
}

func (d *Defect) Error() string {
	return "unrecoverable booking fields: " + strings.Join(d.Missing, ", ")
}

// fieldAliases maps each canonical field to the key spellings small models
// are known to emit. Keys are compared after normalization, so snake_case
// and camelCase variants collapse together.
var fieldAliases = map[string][]string{
	"name":  {"name", "full_name", "attendee_name", "guest_name", "attendee", "user_name"},
	"email": {"email", "attendee_email", "guest_email", "email_address", "user_email"},
	"time":  {"time", "when", "start", "start_time", "datetime", "date", "meeting_time"},
}

// Proxy repairs raw tool calls against the session's validated draft.
type Proxy struct {
	ex       *slots.Extractor
	duration time.Duration
}

// NewProxy builds a repair proxy sharing the extractor's validation rules.
func NewProxy(ex *slots.Extractor, meetingDuration time.Duration) *Proxy {
	if meetingDuration <= 0 {
		meetingDuration = 30 * time.Minute
	}
	return &Proxy{ex: ex, duration: meetingDuration}
}

// Repair coerces raw into a valid booking request. The already-validated
// draft takes precedence over the model's restatement of the same fields;
// the raw call only fills gaps, and everything it contributes is re-validated.
// Pure function: no I/O, same inputs always yield the same output.
func (p *Proxy) Repair(raw models.RawToolCall, draft models.BookingDraft, now time.Time) (*models.RepairedCall, *Defect) {
	flat := flatten(raw.Args)

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		name = strings.TrimSpace(lookupString(flat, "name"))
	}

	email := draft.Email
	if !p.ex.ValidEmail(email) {
		email = ""
		if candidate := strings.TrimSpace(lookupString(flat, "email")); p.ex.ValidEmail(candidate) {
			email = candidate
		}
	}

	var start time.Time
	switch {
	case draft.Start != nil:
		start = *draft.Start
	default:
		start = p.lookupTime(flat, now)
	}

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if email == "" {
		missing = append(missing, "email")
	}
	if start.IsZero() {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return nil, &Defect{Missing: missing}
	}

	return &models.RepairedCall{
		Name:  name,
		Email: email,
		Start: start,
		End:   start.Add(p.duration),
	}, nil
}

// lookupString finds the first alias of field present in flat with a usable
// string value.
func lookupString(flat map[string]any, field string) string {
	for _, alias := range fieldAliases[field] {
		v, ok := flat[normalizeKey(alias)]
		if !ok {
			continue
		}
		if s := coerceString(v); s != "" {
			return s
		}
	}
	return ""
}

func (p *Proxy) lookupTime(flat map[string]any, now time.Time) time.Time {
	for _, alias := range fieldAliases["time"] {
		v, ok := flat[normalizeKey(alias)]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			// Unix seconds, another common model shortcut.
			return time.Unix(int64(t), 0)
		default:
			if s := coerceString(v); s != "" {
				if ts, ok := p.ex.ResolveTime(s, now); ok {
					return ts
				}
			}
		}
	}
	return time.Time{}
}

// flatten walks nested maps and records every leaf under its normalized key.
// Shallower occurrences win so wrapper objects can't shadow the real value.
func flatten(args map[string]any) map[string]any {
	flat := make(map[string]any)
	var walk func(m map[string]any)
	queue := []map[string]any{args}
	walk = func(m map[string]any) {
		for k, v := range m {
			if nested, ok := v.(map[string]any); ok {
				queue = append(queue, nested)
				continue
			}
			key := normalizeKey(k)
			if _, exists := flat[key]; !exists {
				flat[key] = v
			}
		}
	}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		walk(m)
	}
	return flat
}

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "_", "")
	k = strings.ReplaceAll(k, "-", "")
	return k
}

func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}
