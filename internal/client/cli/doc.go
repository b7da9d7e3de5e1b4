// Package cli provides the interactive draft editor.
//
// It wires configuration, the local field store, the HTTP client and the
// autosave and upload coordinators, and runs a REPL on top of them. Typical
// flow: fields are set from the prompt, autosave posts them in the
// background, "blur" and "focus" stand in for the window losing and
// regaining attention, and "submit" ends the session.
//
// Key features:
//   - Local field editing (single values, multi-line text, bulk fill)
//   - Background autosave with pause on blur and conflict handling
//   - File uploads, one at a time
//   - Final submission
//
// The REPL is started via App.Run(ctx), which blocks until the user exits,
// the draft is submitted or the session expires.
// See App, StartStatusWatcher, and runREPL for details.
package cli
