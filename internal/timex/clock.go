package timex

import "time"

// Timer is a pending callback armed on a Clock.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or the timer was stopped before.
	Stop() bool
}

// Clock is the time source the schedulers arm their timers on.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock backed by the time package.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
