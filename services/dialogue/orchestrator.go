// Package dialogue is the top-level controller for chat turns. It owns the
// per-session state machine: idle, collecting, ready_to_book, submitted,
// failed. Every turn resolves to a reply; defects become clarifying
// questions, never raw errors.
package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	traceRepo "folio/database/repository/trace"
	"folio/models"
	"folio/services/calendar"
	"folio/services/intent"
	ai "folio/services/intelligence"
	"folio/services/portfolio"
	"folio/services/repair"
	"folio/services/session"
	"folio/services/slots"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const toolCreateEvent = "create-event"

var (
	retryPattern      = regexp.MustCompile(`(?i)\b(try again|retry)\b`)
	correctionPattern = regexp.MustCompile(`(?i)\b(change|update|correct|fix|wrong|actually)\b`)
)

// Orchestrator consumes router output plus session memory and decides whether
// to answer directly, ask a clarifying question, or invoke the booking tool.
type Orchestrator struct {
	Store     session.Store
	Router    *intent.Router
	Extractor *slots.Extractor
	Repair    *repair.Proxy
	Portfolio portfolio.Service
	Calendar  calendar.Client
	Model     ai.ModelClient                // nil in model-less deployments
	Traces    traceRepo.TurnTraceRepository // nil disables the archive
	Logger    *zap.Logger
}

// HandleTurn processes one inbound message. The whole read-modify-write cycle
// runs under the session's mutex, so overlapping turns for the same id are
// serialized.
func (o *Orchestrator) HandleTurn(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	start := time.Now()
	now := start
	if req.ReferenceTime != nil {
		now = *req.ReferenceTime
	}

	release := o.Store.Acquire(req.SessionID)
	defer release()

	state, err := o.Store.Get(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", req.SessionID, err)
	}

	detected := o.Router.Classify(ctx, state, req.Message, now)

	// The retry affordance is a state-machine transition, not a routing
	// question: after a calendar failure, "try again" stays on the booking
	// path no matter how the message reads.
	if state.Phase == models.PhaseFailed && retryPattern.MatchString(req.Message) {
		detected = models.IntentCalendar
	}

	var reply, tool string
	switch detected {
	case models.IntentCalendar:
		reply, tool = o.handleCalendarTurn(ctx, state, req.Message, now)
	default:
		// A completed booking is cleared once the user moves on; an
		// incomplete draft survives the interruption untouched.
		if state.Phase == models.PhaseSubmitted {
			state.Draft = nil
			state.Phase = models.PhaseIdle
		}
		reply, tool = o.Portfolio.Answer(ctx, req.Message)
	}

	state.Append(models.RoleUser, req.Message, now)
	state.Append(models.RoleAssistant, reply, now)
	state.UpdatedAt = now

	if err := o.Store.Put(ctx, req.SessionID, state); err != nil {
		return nil, fmt.Errorf("persist session %s: %w", req.SessionID, err)
	}

	trace := models.TurnTrace{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		Intent:    string(detected),
		Tool:      tool,
		State:     string(state.Phase),
		LatencyMS: time.Since(start).Milliseconds(),
		CreatedAt: time.Now(),
	}
	o.archiveTrace(trace)

	return &models.ChatResponse{
		SessionID: req.SessionID,
		Reply:     reply,
		State:     state.Phase,
		Trace:     trace,
	}, nil
}

// handleCalendarTurn advances the booking flow by one step.
func (o *Orchestrator) handleCalendarTurn(ctx context.Context, state *models.SessionState, message string, now time.Time) (string, string) {
	// "try again" after a calendar failure re-submits without re-asking for
	// already-known fields.
	if state.Phase == models.PhaseFailed && retryPattern.MatchString(message) &&
		state.Draft != nil && state.Draft.Complete() {
		state.Draft.Status = models.DraftReady
		state.Draft.FailReason = ""
		state.Phase = models.PhaseReadyToBook
		return o.book(ctx, state, now)
	}

	draft := models.BookingDraft{Status: models.DraftCollecting}
	if state.Draft != nil && state.Phase != models.PhaseSubmitted {
		draft = *state.Draft
		draft.FailReason = ""
	}

	o.applyCorrections(&draft, message)

	draft = o.Extractor.Extract(state.Turns, message, draft, now)
	state.Draft = &draft

	if draft.Status == models.DraftReady {
		state.Phase = models.PhaseReadyToBook
		return o.book(ctx, state, now)
	}

	state.Phase = models.PhaseCollecting
	return askFor(draft.MissingSlots()), ""
}

// book runs ready_to_book to its outcome: submitted, failed, or back to
// collecting when the repair proxy cannot reconcile the tool call.
func (o *Orchestrator) book(ctx context.Context, state *models.SessionState, now time.Time) (string, string) {
	draft := state.Draft

	raw := o.emitToolCall(ctx, *draft)
	repaired, defect := o.Repair.Repair(raw, *draft, now)
	if defect != nil {
		// Unrecoverable fields count as missing again; ask for them explicitly.
		for _, field := range defect.Missing {
			switch field {
			case "name":
				draft.Name = ""
			case "email":
				draft.Email = ""
			case "time":
				draft.Start = nil
			}
		}
		draft.Status = models.DraftCollecting
		state.Phase = models.PhaseCollecting
		o.Logger.Warn("tool call repair failed", zap.Strings("missing", defect.Missing))
		return askFor(defect.Missing), ""
	}

	event, err := o.Calendar.CreateEvent(ctx, *repaired)
	if err != nil {
		// The draft is preserved so a retry does not re-collect known fields.
		o.Logger.Error("calendar booking failed", zap.Error(err))
		draft.Status = models.DraftFailed
		draft.FailReason = "calendar_unavailable"
		state.Phase = models.PhaseFailed
		return "Sorry, I couldn't reach the calendar to book that. Your details are saved; just say \"try again\" in a moment.", toolCreateEvent
	}

	draft.Status = models.DraftSubmitted
	state.Phase = models.PhaseSubmitted
	return fmt.Sprintf("You're booked! %s on %s (confirmation %s). A calendar invite is on its way to %s.",
		repaired.Name, repaired.Start.Format("Monday, Jan 2 at 3:04 PM"), event.ID, repaired.Email), toolCreateEvent
}

// emitToolCall asks the model to produce the booking tool call. The output is
// advisory: the repair proxy prefers the validated draft either way, so a
// missing or malformed call costs nothing.
func (o *Orchestrator) emitToolCall(ctx context.Context, draft models.BookingDraft) models.RawToolCall {
	if o.Model == nil {
		return models.RawToolCall{Name: "book_meeting"}
	}

	prompt := fmt.Sprintf(
		"Call the book_meeting tool for this confirmed intro call.\nname: %s\nemail: %s\ntime: %s",
		draft.Name, draft.Email, draft.Start.Format(time.RFC3339),
	)
	reply, err := o.Model.Invoke(ctx, prompt)
	if err != nil || reply.ToolCall == nil {
		if err != nil {
			o.Logger.Warn("model tool-call emission failed, booking from draft", zap.Error(err))
		}
		return models.RawToolCall{Name: "book_meeting"}
	}
	return *reply.ToolCall
}

// applyCorrections clears a field the user explicitly asked to change so the
// extractor refills it from this message.
func (o *Orchestrator) applyCorrections(draft *models.BookingDraft, message string) {
	if !correctionPattern.MatchString(message) {
		return
	}
	lower := strings.ToLower(message)
	if strings.Contains(lower, "email") {
		draft.Email = ""
	}
	if strings.Contains(lower, "name") {
		draft.Name = ""
	}
	if strings.Contains(lower, "time") || strings.Contains(lower, "date") || strings.Contains(lower, "day") {
		draft.Start = nil
	}
}

// archiveTrace stores the trace best-effort; the turn never fails over it.
func (o *Orchestrator) archiveTrace(trace models.TurnTrace) {
	if o.Traces == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := o.Traces.Create(ctx, trace); err != nil {
		o.Logger.Warn("failed to archive turn trace", zap.Error(err))
	}
}

var slotPhrases = map[string]string{
	"name":  "your name",
	"email": "your email address",
	"time":  "a time that works for you",
}

// askFor names exactly the missing fields in a clarifying question.
func askFor(missing []string) string {
	phrases := make([]string, 0, len(missing))
	for _, field := range missing {
		phrases = append(phrases, slotPhrases[field])
	}

	var list string
	switch len(phrases) {
	case 1:
		list = phrases[0]
	case 2:
		list = phrases[0] + " and " + phrases[1]
	default:
		list = strings.Join(phrases[:len(phrases)-1], ", ") + ", and " + phrases[len(phrases)-1]
	}
	return fmt.Sprintf("Happy to set up a call. Could you share %s?", list)
}
