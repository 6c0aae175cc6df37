package models

import "time"

// Role tags one conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in a session's history.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Phase is the dialogue state machine position for a session.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseCollecting  Phase = "collecting"
	PhaseReadyToBook Phase = "ready_to_book"
	PhaseSubmitted   Phase = "submitted"
	PhaseFailed      Phase = "failed"
)

// DraftStatus tracks how far along an in-progress booking is.
type DraftStatus string

const (
	DraftCollecting DraftStatus = "collecting"
	DraftReady      DraftStatus = "ready"
	DraftSubmitted  DraftStatus = "submitted"
	DraftFailed     DraftStatus = "failed"
)

// BookingDraft accumulates the three slots needed to book a meeting.
// Status is ready only when all three fields are present and valid.
type BookingDraft struct {
	Name   string      `json:"name,omitempty"`
	Email  string      `json:"email,omitempty"`
	Start  *time.Time  `json:"start,omitempty"`
	Status DraftStatus `json:"status"`

	// FailReason is set only when Status is failed.
	FailReason string `json:"failReason,omitempty"`
}

// MissingSlots lists the canonical names of slots still unset, in fixed order.
func (d BookingDraft) MissingSlots() []string {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.Start == nil {
		missing = append(missing, "time")
	}
	return missing
}

// Complete reports whether all three slots are filled.
func (d BookingDraft) Complete() bool {
	return len(d.MissingSlots()) == 0
}

// SessionState is everything the orchestrator knows about one session.
type SessionState struct {
	SessionID string        `json:"sessionId"`
	Phase     Phase         `json:"phase"`
	Turns     []Turn        `json:"turns"`
	Draft     *BookingDraft `json:"draft,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewSessionState returns a fresh idle session for the given id.
func NewSessionState(sessionID string) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Phase:     PhaseIdle,
	}
}

// Append records a turn in the session history.
func (s *SessionState) Append(role Role, text string, at time.Time) {
	s.Turns = append(s.Turns, Turn{Role: role, Text: text, At: at})
}
