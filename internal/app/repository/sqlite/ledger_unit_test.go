package sqlite

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLedger(t *testing.T) (*Ledger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ledger := NewLedgerFromDB(db)
	ledger.now = func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }
	return ledger, mock
}

func TestLedger_Migrate_Unit(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS uploads")).
		WillReturnError(errors.New("disk I/O error"))

	err := ledger.Migrate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_RecordUpload_Unit(t *testing.T) {
	ledger, mock := newMockLedger(t)
	record := sampleRecord("run-1", "files/one")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO uploads")).
		WithArgs("run-1", "files/one", record.FileURI, "audio/mpeg", record.AudioPath, record.OutputPath,
			"gemini-2.0-flash", "uploaded", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := ledger.RecordUpload(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_MarkFailed_Unit(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE uploads SET status = ?, error_kind = ?")).
		WithArgs("failed", "generate", "quota exceeded", sqlmock.AnyArg(), "run-1").
		WillReturnError(errors.New("database is locked"))

	err := ledger.MarkFailed(context.Background(), "run-1", "generate", "quota exceeded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_ListUploads_ScanError_Unit(t *testing.T) {
	ledger, mock := newMockLedger(t)

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, run_id")).WillReturnRows(rows)

	_, err := ledger.ListUploads(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db scan failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedger_Close_Unit(t *testing.T) {
	ledger, mock := newMockLedger(t)
	mock.ExpectClose()

	assert.NoError(t, ledger.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
