package fields

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/common"
	"github.com/dmitrijs2005/draftkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db      dbx.DBTX
	kind    models.Kind
	draftID int64
}

func NewSQLiteRepository(db dbx.DBTX, d models.Draft) *SQLiteRepository {
	return &SQLiteRepository{db: db, kind: d.Kind, draftID: d.DraftID}
}

func (r *SQLiteRepository) Set(ctx context.Context, f models.Field) error {
	query := `
		INSERT INTO fields (draft_kind, draft_id, name, value, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(draft_kind, draft_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, string(r.kind), r.draftID, f.Name, f.Value, unixNano(f.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to set field[%s]: %w", f.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) (models.Field, error) {
	query := `SELECT name, value, updated_at FROM fields WHERE draft_kind = ? AND draft_id = ? AND name = ?`

	f, err := scanField(r.db.QueryRowContext(ctx, query, string(r.kind), r.draftID, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Field{}, fmt.Errorf("field[%s]: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return models.Field{}, fmt.Errorf("failed to get field[%s]: %w", name, err)
	}
	return f, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM fields WHERE draft_kind = ? AND draft_id = ? AND name = ?`
	if _, err := r.db.ExecContext(ctx, query, string(r.kind), r.draftID, name); err != nil {
		return fmt.Errorf("failed to delete field[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Field, error) {
	query := `SELECT name, value, updated_at FROM fields WHERE draft_kind = ? AND draft_id = ? ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, string(r.kind), r.draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	defer rows.Close()

	var result []models.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field row: %w", err)
		}
		result = append(result, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate field rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	query := `DELETE FROM fields WHERE draft_kind = ? AND draft_id = ?`
	if _, err := r.db.ExecContext(ctx, query, string(r.kind), r.draftID); err != nil {
		return fmt.Errorf("failed to clear fields: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanField(s scanner) (models.Field, error) {
	var f models.Field
	var updated int64
	if err := s.Scan(&f.Name, &f.Value, &updated); err != nil {
		return models.Field{}, err
	}
	if updated != 0 {
		f.UpdatedAt = time.Unix(0, updated).UTC()
	}
	return f, nil
}

// unixNano stores the zero time as 0 so it reads back as the zero time.
func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
