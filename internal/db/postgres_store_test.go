package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewPostgresStore(sqlx.NewDb(conn, "sqlmock"), zap.NewNop()), mock
}

func TestPostgresStoreLoad(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	document := `{"statistics": {"accepted_students": 1, "total_codes": 3, "total_english_codes": 1},
		"requests": {"REQ_5_10": {"student_name": "Ali Hassan", "codes_count": 3, "status": "accepted"}}}`
	mock.ExpectQuery("SELECT document FROM bot_snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte(document)))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Statistics{AcceptedCount: 1, TotalCodes: 3, TotalEnglishCodes: 1}, snap.Statistics)
	require.Contains(t, snap.Requests, "REQ_5_10")
	assert.Equal(t, StatusAccepted, snap.Requests["REQ_5_10"].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadMissingRowCreatesDefault(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT document FROM bot_snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"document"}))
	mock.ExpectExec("INSERT INTO bot_snapshot").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NewSnapshot(), snap)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadCorruptDocument(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT document FROM bot_snapshot").
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow([]byte("[1,2")))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NewSnapshot(), snap)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreLoadQueryError(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT document FROM bot_snapshot").
		WillReturnError(errors.New("connection refused"))

	_, err := store.Load(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSave(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO bot_snapshot").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bot_snapshot").
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(errors.New("disk full"))

	require.NoError(t, store.Save(context.Background(), NewSnapshot()))

	err := store.Save(context.Background(), NewSnapshot())
	assert.ErrorContains(t, err, "PostgresStore.Save")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bot_snapshot").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(context.Background(), sqlx.NewDb(conn, "sqlmock")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
