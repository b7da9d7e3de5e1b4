package services

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/draftkeeper/internal/client/client"
	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/dmitrijs2005/draftkeeper/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var t0 = time.Date(2025, time.May, 12, 14, 45, 0, 0, time.UTC)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newForm(t *testing.T, db *sql.DB, d models.Draft) (FormService, *timex.Manual) {
	t.Helper()
	clock := timex.NewManual(t0)
	return NewFormService(db, d, clock), clock
}

var draft = models.Draft{Kind: models.KindApplication, SubmitID: 5, DraftID: 17, OwnerUserID: "u-1"}

func TestFormService_SetAndValues(t *testing.T) {
	svc, clock := newForm(t, setupDB(t), draft)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "project_title", "Clean water"))
	clock.Advance(time.Minute)
	require.NoError(t, svc.Set(ctx, "budget", "100"))
	require.NoError(t, svc.Set(ctx, "budget", "250"))

	v, err := svc.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"project_title": {"Clean water"}, "budget": {"250"}}, v)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "budget", all[0].Name)
	assert.Equal(t, t0.Add(time.Minute), all[0].UpdatedAt)
	assert.Equal(t, t0, all[1].UpdatedAt)
}

func TestFormService_Unset(t *testing.T) {
	svc, _ := newForm(t, setupDB(t), draft)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "narrative", "long text"))
	require.NoError(t, svc.Unset(ctx, "narrative"))
	require.NoError(t, svc.Unset(ctx, "narrative"))

	v, err := svc.Values(ctx)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestFormService_SetManyValidatesBeforeWriting(t *testing.T) {
	svc, _ := newForm(t, setupDB(t), draft)
	ctx := context.Background()

	require.NoError(t, svc.SetMany(ctx, map[string]string{"a": "1", "b": "2"}))

	err := svc.SetMany(ctx, map[string]string{"c": "3", "bad name": "x"})
	require.ErrorIs(t, err, ErrInvalidFieldName)

	v, err := svc.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"a": {"1"}, "b": {"2"}}, v)
}

func TestFormService_RejectsBadNames(t *testing.T) {
	svc, _ := newForm(t, setupDB(t), draft)
	for _, name := range []string{"", "  ", "a=b", "x&y", "user_id"} {
		require.ErrorIs(t, svc.Set(context.Background(), name, "v"), ErrInvalidFieldName, "name %q", name)
	}
}

func TestFormService_DraftsAreIsolated(t *testing.T) {
	db := setupDB(t)
	app, _ := newForm(t, db, draft)
	other, _ := newForm(t, db, models.Draft{Kind: models.KindReport, SubmitID: 2, DraftID: 17})
	ctx := context.Background()

	require.NoError(t, app.Set(ctx, "title", "application"))
	require.NoError(t, other.Set(ctx, "title", "report"))

	v, err := app.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, "application", v.Get("title"))
}

func TestFormService_ClosedDB(t *testing.T) {
	db := setupDB(t)
	svc, _ := newForm(t, db, draft)
	require.NoError(t, db.Close())

	_, err := svc.Values(context.Background())
	require.ErrorContains(t, err, "error reading form")
	require.ErrorContains(t, svc.Set(context.Background(), "a", "b"), "error saving field")
	require.Error(t, svc.SetMany(context.Background(), map[string]string{"a": "b"}))
}
