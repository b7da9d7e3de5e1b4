package common

import "errors"

var (
	// Draft context errors.
	ErrInvalidDraft     = errors.New("invalid draft")
	ErrUnknownDraftKind = errors.New("unknown draft kind")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
