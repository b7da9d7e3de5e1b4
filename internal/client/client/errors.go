package client

import "errors"

var (
	ErrTimeout          = errors.New("request timeout")
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidBaseURL   = errors.New("invalid server url")
)
