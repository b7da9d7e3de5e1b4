// Package services contains application services for the draftkeeper client.
// This file defines the form service: the local store of a draft's field
// values that every autosave serializes.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/client/repositories/fields"
	"github.com/dmitrijs2005/draftkeeper/internal/common"
	"github.com/dmitrijs2005/draftkeeper/internal/dbx"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
)

// FormService defines the field operations the CLI and the autosave
// dispatcher need.
//
// Contract:
//   - Values: serialize every field of the draft, ready to post.
//   - Set / SetMany: store values; SetMany is all-or-nothing.
//   - Unset: drop a field so it is no longer sent.
//   - List: fields ordered by name.
type FormService interface {
	Values(ctx context.Context) (url.Values, error)
	Set(ctx context.Context, name, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Unset(ctx context.Context, name string) error
	List(ctx context.Context) ([]models.Field, error)
}

type formService struct {
	db    *sql.DB
	draft models.Draft
	clock timex.Clock
}

// NewFormService constructs a FormService over the fields of draft d.
func NewFormService(db *sql.DB, d models.Draft, clock timex.Clock) FormService {
	return &formService{db: db, draft: d, clock: clock}
}

func (s *formService) getFieldsRepo(db dbx.DBTX) fields.Repository {
	return fields.NewSQLiteRepository(db, s.draft)
}

func (s *formService) Values(ctx context.Context) (url.Values, error) {
	all, err := s.getFieldsRepo(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading form: %w", err)
	}

	v := make(url.Values, len(all))
	for _, f := range all {
		v.Set(f.Name, f.Value)
	}
	return v, nil
}

func (s *formService) Set(ctx context.Context, name, value string) error {
	if err := validateFieldName(name); err != nil {
		return err
	}
	f := models.Field{Name: name, Value: value, UpdatedAt: s.clock.Now()}
	if err := s.getFieldsRepo(s.db).Set(ctx, f); err != nil {
		return fmt.Errorf("error saving field: %w", err)
	}
	return nil
}

func (s *formService) SetMany(ctx context.Context, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		if err := validateFieldName(name); err != nil {
			return err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	now := s.clock.Now()
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getFieldsRepo(tx)
		for _, name := range names {
			if err := repo.Set(ctx, models.Field{Name: name, Value: values[name], UpdatedAt: now}); err != nil {
				return fmt.Errorf("error saving field: %w", err)
			}
		}
		return nil
	})
}

func (s *formService) Unset(ctx context.Context, name string) error {
	if err := s.getFieldsRepo(s.db).Delete(ctx, name); err != nil {
		return fmt.Errorf("error removing field: %w", err)
	}
	return nil
}

func (s *formService) List(ctx context.Context) ([]models.Field, error) {
	all, err := s.getFieldsRepo(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading form: %w", err)
	}
	return all, nil
}

// validateFieldName rejects names the server would never see as a form
// field, and the user id field the client adds itself.
func validateFieldName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t\r\n=&") {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	if name == common.UserIDFieldName {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidFieldName, name)
	}
	return nil
}
