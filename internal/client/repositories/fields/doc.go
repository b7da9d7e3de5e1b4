// Package fields provides the client-side persistence layer for draft form
// values.
//
// # Overview
//
// The package defines a Repository interface over the Field values of one
// draft (see internal/client/models). A SQLite-backed implementation
// (SQLiteRepository) keeps them in the fields table, keyed by draft kind,
// draft id and field name, through a dbx.DBTX (either *sql.DB or *sql.Tx),
// so several drafts can share one local database.
//
// Key Types
//
//   - type Repository        - interface used by higher-level services
//   - type SQLiteRepository  - SQLite implementation over dbx.DBTX
//
// Typical Usage
//
//	repo := fields.NewSQLiteRepository(db, draft)
//	_ = repo.Set(ctx, models.Field{Name: "project_title", Value: "Clean water"})
//	all, _ := repo.List(ctx)
//	_ = repo.Delete(ctx, "project_title")
package fields
