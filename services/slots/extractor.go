// Package slots pulls booking fields out of free-form chat messages.
package slots

import (
	"regexp"
	"strings"
	"time"

	"folio/models"

	"github.com/go-playground/validator/v10"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// Introduction phrasings. Captures stop at the first lowercase word, so
	// "my name is Ada Lovelace and my email is ..." yields just the name and
	// "I am free on Friday" never reads as one.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[Mm]y name(?:'s| is) ([A-Z][A-Za-z.'\-]*(?: [A-Z][A-Za-z.'\-]*)*)`),
		regexp.MustCompile(`\bI(?: am|'m) ([A-Z][A-Za-z.'\-]*(?: [A-Z][A-Za-z.'\-]*)*)`),
		regexp.MustCompile(`\b[Tt]his is ([A-Z][A-Za-z.'\-]*(?: [A-Z][A-Za-z.'\-]*)*)`),
	}

	nameWordPattern = regexp.MustCompile(`^[A-Za-z.'\-]+$`)

	explicitLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Extractor identifies and validates booking slots in new messages.
type Extractor struct {
	w        *when.Parser
	validate *validator.Validate
}

// NewExtractor builds an extractor with English natural-date rules.
func NewExtractor() *Extractor {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Extractor{
		w:        w,
		validate: validator.New(),
	}
}

// ValidEmail reports whether s passes address-syntax validation.
func (e *Extractor) ValidEmail(s string) bool {
	return e.validate.Var(s, "required,email") == nil
}

// ResolveTime resolves text to a concrete instant against the reference now.
// Explicit layouts are tried before natural-language phrases so RFC 3339
// values from tool calls hit the same rules as chat text.
func (e *Extractor) ResolveTime(text string, now time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range explicitLayouts {
		if ts, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return ts, true
		}
	}

	r, err := e.w.Parse(trimmed, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}

// Extract merges any slots found in message into draft. Already-set fields
// are never overwritten; a field that fails to parse is left unset. The same
// inputs always yield the same draft.
func (e *Extractor) Extract(history []models.Turn, message string, draft models.BookingDraft, now time.Time) models.BookingDraft {
	if draft.Email == "" {
		if email := emailPattern.FindString(message); email != "" && e.ValidEmail(email) {
			draft.Email = email
		}
	}

	if draft.Start == nil {
		// Strip any email address first so its digits can't confuse the
		// date parser.
		text := emailPattern.ReplaceAllString(message, "")
		if ts, ok := e.ResolveTime(text, now); ok {
			draft.Start = &ts
		}
	}

	if draft.Name == "" {
		draft.Name = e.findName(history, message, now)
	}

	if draft.Complete() {
		draft.Status = models.DraftReady
	} else {
		draft.Status = models.DraftCollecting
	}
	return draft
}

// findName looks for an introduction phrase, then falls back to treating a
// short bare message as the answer when the assistant just asked for a name.
func (e *Extractor) findName(history []models.Turn, message string, now time.Time) string {
	for _, p := range namePatterns {
		if m := p.FindStringSubmatch(message); m != nil {
			return trimName(m[1])
		}
	}

	if !lastAssistantAskedFor(history, "name") {
		return ""
	}
	candidate := strings.TrimSpace(message)
	if candidate == "" || emailPattern.MatchString(candidate) {
		return ""
	}
	// A bare date answer ("tomorrow") is not a name.
	if _, isTime := e.ResolveTime(candidate, now); isTime {
		return ""
	}
	words := strings.Fields(candidate)
	if len(words) > 4 {
		return ""
	}
	for _, w := range words {
		if !nameWordPattern.MatchString(w) {
			return ""
		}
	}
	return trimName(candidate)
}

func trimName(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".,!?")
}

func lastAssistantAskedFor(history []models.Turn, field string) bool {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleAssistant {
			return strings.Contains(strings.ToLower(history[i].Text), field)
		}
	}
	return false
}
