package models

import "time"

// RawToolCall is a structured tool invocation as emitted by the model.
// Nothing about its shape is guaranteed: keys may be aliased, values may be
// nested one level deep or carry the wrong type. It is untrusted input until
// it has passed through the repair proxy.
type RawToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// RepairedCall is a booking request proven valid by the repair proxy.
// Every field has passed the same validation rules the slot extractor applies.
type RepairedCall struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
