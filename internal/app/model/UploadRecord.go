package model

import "time"

type UploadStatus string

const (
	StatusUploaded  UploadStatus = "uploaded"
	StatusCompleted UploadStatus = "completed"
	StatusFailed    UploadStatus = "failed"
)

// UploadRecord tracks one audio file placed on the remote service.
type UploadRecord struct {
	ID           int64
	RunID        string
	FileName     string
	FileURI      string
	MIMEType     string
	AudioPath    string
	OutputPath   string
	Model        string
	Status       UploadStatus
	ErrorKind    string
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted reports whether the remote file has been removed.
func (r UploadRecord) Deleted() bool {
	return r.DeletedAt != nil
}
