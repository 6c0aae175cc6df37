package models

// Intent is the coarse category a single user turn is routed to.
// The set is closed: every turn resolves to exactly one of these.
type Intent string

const (
	IntentPortfolio Intent = "portfolio"
	IntentCalendar  Intent = "calendar"
)
