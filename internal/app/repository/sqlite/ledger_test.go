package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemini-transcriber/internal/app/model"
	"gemini-transcriber/internal/app/repository"
)

func TestLedger_Interface(t *testing.T) {
	var _ repository.UploadLedger = (*Ledger)(nil)
}

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	ledger, err := NewLedger(context.Background(), filepath.Join(t.TempDir(), "nested", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func sampleRecord(runID, fileName string) model.UploadRecord {
	return model.UploadRecord{
		RunID:      runID,
		FileName:   fileName,
		FileURI:    "https://generativelanguage.googleapis.com/v1beta/" + fileName,
		MIMEType:   "audio/mpeg",
		AudioPath:  "media/filename.mp3",
		OutputPath: "output/transcript.txt",
		Model:      "gemini-2.0-flash",
	}
}

func TestLedger_Lifecycle(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	ledger.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	id1, err := ledger.RecordUpload(ctx, sampleRecord("run-1", "files/one"))
	require.NoError(t, err)
	id2, err := ledger.RecordUpload(ctx, sampleRecord("run-2", "files/two"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	require.NoError(t, ledger.MarkCompleted(ctx, "run-1"))
	require.NoError(t, ledger.MarkFailed(ctx, "run-2", "write", "permission denied"))

	records, err := ledger.ListUploads(ctx, false)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.Equal(t, "run-2", records[0].RunID)
	assert.Equal(t, model.StatusFailed, records[0].Status)
	assert.Equal(t, "write", records[0].ErrorKind)
	assert.Equal(t, "permission denied", records[0].ErrorMessage)
	assert.Equal(t, "run-1", records[1].RunID)
	assert.Equal(t, model.StatusCompleted, records[1].Status)
	assert.Equal(t, "audio/mpeg", records[1].MIMEType)
	assert.False(t, records[1].Deleted())

	deletedAt := base.Add(time.Hour)
	require.NoError(t, ledger.MarkDeleted(ctx, "files/one", deletedAt))
	assert.ErrorIs(t, ledger.MarkDeleted(ctx, "files/one", deletedAt), sql.ErrNoRows)

	records, err = ledger.ListUploads(ctx, false)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "files/two", records[0].FileName)

	records, err = ledger.ListUploads(ctx, true)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[1].Deleted())
	assert.True(t, deletedAt.Equal(*records[1].DeletedAt))
}

func TestLedger_UnknownRun(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	assert.ErrorIs(t, ledger.MarkCompleted(ctx, "missing"), sql.ErrNoRows)
	assert.ErrorIs(t, ledger.MarkFailed(ctx, "missing", "upload", "boom"), sql.ErrNoRows)
}

func TestLedger_DuplicateRunID(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)

	_, err := ledger.RecordUpload(ctx, sampleRecord("run-1", "files/one"))
	require.NoError(t, err)
	_, err = ledger.RecordUpload(ctx, sampleRecord("run-1", "files/other"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestNewLedger_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	ledger, err := NewLedger(ctx, path)
	require.NoError(t, err)
	_, err = ledger.RecordUpload(ctx, sampleRecord("run-1", "files/one"))
	require.NoError(t, err)
	require.NoError(t, ledger.Close())

	reopened, err := NewLedger(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.ListUploads(ctx, true)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.StatusUploaded, records[0].Status)
}
