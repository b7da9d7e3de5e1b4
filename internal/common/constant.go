// Package common contains wire-level constants and sentinel errors shared
// by the draftkeeper client components.
package common

// Form and query parameter names understood by the draft endpoints.
const (
	// UserIDFieldName carries the owner user id alongside the form fields so
	// the server can tell whether the last save came from another session.
	UserIDFieldName = "user_id"

	ForceParamName         = "force"
	StaffOverrideParamName = "user"
	ReturnPathParamName    = "next"
)

// Support links rendered next to user-visible errors.
const (
	ContactURL = "/apply/support#contact"
	SupportURL = "/apply/support"
)
