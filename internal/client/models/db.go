package models

import "time"

// Field is one form value kept in the local store until it is serialized
// into an autosave request.
type Field struct {
	// Name is the form field name as the server knows it.
	Name string

	// Value is the raw text the user entered.
	Value string

	// UpdatedAt is the last local modification time in UTC.
	UpdatedAt time.Time
}
