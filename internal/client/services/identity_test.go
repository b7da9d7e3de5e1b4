package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/draftkeeper/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityService_GeneratesOnceAndPersists(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	orig := newUserID
	t.Cleanup(func() { newUserID = orig })
	ids := []string{"first-id", "second-id"}
	newUserID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	svc := NewIdentityService(db)
	id, err := svc.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-id", id)

	again, err := NewIdentityService(db).UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-id", again, "stable across service instances")

	stored, err := metadata.NewSQLiteRepository(db).Get(ctx, metadata.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, "first-id", string(stored))

	reset, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second-id", reset)
	id, err = svc.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second-id", id)
}

func TestIdentityService_DefaultIsUUID(t *testing.T) {
	id, err := NewIdentityService(setupDB(t)).UserID(context.Background())
	require.NoError(t, err)
	assert.Len(t, id, 36)
}

func TestIdentityService_ClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	_, err := NewIdentityService(db).UserID(context.Background())
	require.ErrorContains(t, err, "error reading user id")
}
