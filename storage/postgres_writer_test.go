package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/storage"
	"airbnb-rooms-scraper/utils"
)

func newMockWriter(t *testing.T) (*storage.PostgresWriter, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewPostgresWriterFromDB(db, utils.NewNopLogger()), mock
}

func TestPostgresWriter_CreateTables(t *testing.T) {
	w, mock := newMockWriter(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS listing_records").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, w.CreateTables(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_Save(t *testing.T) {
	w, mock := newMockWriter(t)
	result := sampleResult()

	mock.ExpectBegin()
	records := mock.ExpectPrepare("INSERT INTO listing_records")
	records.ExpectExec().
		WithArgs(runID, "53997462", "https://www.airbnb.com/rooms/53997462", "Entire condo", 4, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	records.ExpectExec().
		WithArgs(runID, "2", "https://www.airbnb.com/rooms/2", "Private room", 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectPrepare("INSERT INTO listing_failures").ExpectExec().
		WithArgs(runID, "https://www.airbnb.com/rooms/404", "PermanentFetchError", 1, "not found", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, w.Save(context.Background(), runID, result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_SaveRollsBackOnError(t *testing.T) {
	w, mock := newMockWriter(t)

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO listing_records").ExpectExec().
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := w.Save(context.Background(), runID, sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_InvalidRunID(t *testing.T) {
	w, mock := newMockWriter(t)

	err := w.Save(context.Background(), "not-a-uuid", sampleResult())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_EmptyResult(t *testing.T) {
	w, mock := newMockWriter(t)

	require.NoError(t, w.Save(context.Background(), runID, models.NewBatchResult()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
