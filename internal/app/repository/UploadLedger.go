package repository

import (
	"context"
	"time"

	"gemini-transcriber/internal/app/model"
)

// UploadLedger persists the remote files created by transcription runs.
type UploadLedger interface {
	Close() error

	RecordUpload(ctx context.Context, record model.UploadRecord) (int64, error)

	MarkCompleted(ctx context.Context, runID string) error

	MarkFailed(ctx context.Context, runID string, errorKind, errorMessage string) error

	MarkDeleted(ctx context.Context, fileName string, deletedAt time.Time) error

	// ListUploads returns newest first; deleted files only when includeDeleted is set.
	ListUploads(ctx context.Context, includeDeleted bool) ([]model.UploadRecord, error)
}
