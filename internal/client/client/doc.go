// Package client talks to the draft server.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the draft
//     endpoints: Autosave, Submit, GetUploadURL, RemoveFile.
//  2. A concrete HTTP implementation (see HTTPClient) that resolves draft
//     paths against the server base URL, keeps session cookies, applies a
//     per-request deadline and maps transport failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// A request that produced a status never fails: the status is in the
// Response. Failures without a status are ErrTimeout (deadline exceeded)
// or ErrUnavailable; helper endpoints that need a 200 also return
// ErrUnexpectedStatus. Match them with errors.Is.
package client
