package fields

import (
	"context"

	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
)

// Repository stores the form values of one draft.
type Repository interface {
	// Set inserts or replaces the value of a field.
	Set(ctx context.Context, f models.Field) error

	// Get returns a field, or common.ErrNotFound.
	Get(ctx context.Context, name string) (models.Field, error)

	// Delete removes a field. Deleting a missing field is not an error.
	Delete(ctx context.Context, name string) error

	// List returns every field of the draft ordered by name.
	List(ctx context.Context) ([]models.Field, error)

	// Clear removes every field of the draft.
	Clear(ctx context.Context) error
}
