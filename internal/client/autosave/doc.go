// Package autosave keeps a draft persisted in the background.
//
// A Scheduler owns the timers: it waits an initial delay after start, then
// saves on a fixed interval, pauses when the window has been out of focus
// for longer than a grace period and resumes on focus. Each save is handed
// to a Saver; the Dispatcher is the production Saver, posting the form and
// turning the server's answer into an Outcome plus user-visible feedback.
package autosave
