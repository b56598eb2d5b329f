package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gemini-transcriber/internal/app/model"
)

// MockUploadLedger is a testify mock of repository.UploadLedger.
type MockUploadLedger struct {
	mock.Mock
}

func NewMockUploadLedger() *MockUploadLedger {
	return &MockUploadLedger{}
}

func (m *MockUploadLedger) Close() error {
	return m.Called().Error(0)
}

func (m *MockUploadLedger) RecordUpload(ctx context.Context, record model.UploadRecord) (int64, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUploadLedger) MarkCompleted(ctx context.Context, runID string) error {
	return m.Called(ctx, runID).Error(0)
}

func (m *MockUploadLedger) MarkFailed(ctx context.Context, runID string, errorKind, errorMessage string) error {
	return m.Called(ctx, runID, errorKind, errorMessage).Error(0)
}

func (m *MockUploadLedger) MarkDeleted(ctx context.Context, fileName string, deletedAt time.Time) error {
	return m.Called(ctx, fileName, deletedAt).Error(0)
}

func (m *MockUploadLedger) ListUploads(ctx context.Context, includeDeleted bool) ([]model.UploadRecord, error) {
	args := m.Called(ctx, includeDeleted)
	records, _ := args.Get(0).([]model.UploadRecord)
	return records, args.Error(1)
}
