package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/draftkeeper/internal/client/repositories/metadata"
	"github.com/google/uuid"
)

var newUserID = uuid.NewString

// IdentityService hands out the user id sent with every save. The server
// compares it with the id of the last save to detect a second session
// editing the same draft, so it must stay stable across restarts.
type IdentityService interface {
	UserID(ctx context.Context) (string, error)
	Reset(ctx context.Context) (string, error)
}

type identityService struct {
	db *sql.DB
}

func NewIdentityService(db *sql.DB) IdentityService {
	return &identityService{db: db}
}

func (s *identityService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// UserID returns the stored id, generating and storing one on first use.
func (s *identityService) UserID(ctx context.Context) (string, error) {
	repo := s.getMetadataRepo()

	v, err := repo.Get(ctx, metadata.KeyUserID)
	if err != nil {
		return "", fmt.Errorf("error reading user id: %w", err)
	}
	if id := strings.TrimSpace(string(v)); id != "" {
		return id, nil
	}
	return s.store(ctx, repo)
}

// Reset replaces the stored id with a fresh one. The next save will look
// like it comes from a different session.
func (s *identityService) Reset(ctx context.Context) (string, error) {
	return s.store(ctx, s.getMetadataRepo())
}

func (s *identityService) store(ctx context.Context, repo metadata.Repository) (string, error) {
	id := newUserID()
	if err := repo.Set(ctx, metadata.KeyUserID, []byte(id)); err != nil {
		return "", fmt.Errorf("error saving user id: %w", err)
	}
	return id, nil
}
