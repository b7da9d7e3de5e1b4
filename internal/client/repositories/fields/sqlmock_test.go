package fields

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/draftkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewSQLiteRepository(db, application), mock
}

func TestSet_PassesDraftScope(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("INSERT INTO fields").
		WithArgs("apply", int64(17), "budget", "100", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), models.Field{Name: "budget", Value: "100"}))
}

func TestList_ScanError(t *testing.T) {
	r, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"name", "value", "updated_at"}).
		AddRow("budget", "100", "not a number")
	mock.ExpectQuery("SELECT name, value, updated_at FROM fields").
		WithArgs("apply", int64(17)).
		WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.ErrorContains(t, err, "failed to scan field row")
}

func TestList_IterationError(t *testing.T) {
	r, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"name", "value", "updated_at"}).
		AddRow("a", "1", int64(0)).
		AddRow("b", "2", int64(0)).
		RowError(1, errors.New("io"))
	mock.ExpectQuery("SELECT name, value, updated_at FROM fields").WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.ErrorContains(t, err, "failed to iterate field rows")
}

func TestDelete_ExecError(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec("DELETE FROM fields").
		WithArgs("apply", int64(17), "budget").
		WillReturnError(errors.New("database is locked"))

	err := r.Delete(context.Background(), "budget")
	require.ErrorContains(t, err, "database is locked")
}
