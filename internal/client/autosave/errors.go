package autosave

import "errors"

var (
	ErrAlreadyStarted = errors.New("autosave already started")
	ErrStopped        = errors.New("autosave stopped")
)
