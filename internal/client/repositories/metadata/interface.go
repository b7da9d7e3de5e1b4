package metadata

import (
	"context"
)

// Keys of the values the client keeps about itself.
const (
	// KeyUserID holds the random id identifying this client's edits.
	KeyUserID = "user_id"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
