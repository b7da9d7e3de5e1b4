package uploads

import "errors"

var (
	ErrChannelBusy    = errors.New("another upload is in progress")
	ErrUnknownField   = errors.New("unknown file field")
	ErrNoFileSelected = errors.New("no file selected")
)
