package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"gemini-transcriber/internal/app/model"
)

const createUploadsTableSQL = `
CREATE TABLE IF NOT EXISTS uploads (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL UNIQUE,
	file_name     TEXT NOT NULL,
	file_uri      TEXT NOT NULL,
	mime_type     TEXT NOT NULL DEFAULT '',
	audio_path    TEXT NOT NULL,
	output_path   TEXT NOT NULL,
	model         TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_kind    TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL,
	deleted_at    DATETIME
);
CREATE INDEX IF NOT EXISTS idx_uploads_file_name ON uploads(file_name);`

type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// NewLedger opens (creating if needed) the SQLite ledger at dbFilePath.
func NewLedger(ctx context.Context, dbFilePath string) (*Ledger, error) {
	if dir := filepath.Dir(dbFilePath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ledger := NewLedgerFromDB(db)
	if err := ledger.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return ledger, nil
}

// NewLedgerFromDB wraps an existing handle without touching the schema.
func NewLedgerFromDB(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

func (l *Ledger) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, createUploadsTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) RecordUpload(ctx context.Context, record model.UploadRecord) (int64, error) {
	now := l.now().UTC()
	status := record.Status
	if status == "" {
		status = model.StatusUploaded
	}

	insertSQL := `INSERT INTO uploads (run_id, file_name, file_uri, mime_type, audio_path, output_path, model, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	res, err := l.db.ExecContext(ctx, insertSQL, record.RunID, record.FileName, record.FileURI, record.MIMEType,
		record.AudioPath, record.OutputPath, record.Model, string(status), now, now)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	return res.LastInsertId()
}

func (l *Ledger) MarkCompleted(ctx context.Context, runID string) error {
	updateSQL := `UPDATE uploads SET status = ?, updated_at = ? WHERE run_id = ?;`
	return l.execOne(ctx, updateSQL, string(model.StatusCompleted), l.now().UTC(), runID)
}

func (l *Ledger) MarkFailed(ctx context.Context, runID string, errorKind, errorMessage string) error {
	updateSQL := `UPDATE uploads SET status = ?, error_kind = ?, error_message = ?, updated_at = ? WHERE run_id = ?;`
	return l.execOne(ctx, updateSQL, string(model.StatusFailed), errorKind, errorMessage, l.now().UTC(), runID)
}

func (l *Ledger) MarkDeleted(ctx context.Context, fileName string, deletedAt time.Time) error {
	updateSQL := `UPDATE uploads SET deleted_at = ?, updated_at = ? WHERE file_name = ? AND deleted_at IS NULL;`
	return l.execOne(ctx, updateSQL, deletedAt.UTC(), l.now().UTC(), fileName)
}

func (l *Ledger) ListUploads(ctx context.Context, includeDeleted bool) ([]model.UploadRecord, error) {
	sqlStr := `
		SELECT id, run_id, file_name, file_uri, mime_type, audio_path, output_path, model, status,
		       error_kind, error_message, created_at, updated_at, deleted_at
		FROM uploads`
	if !includeDeleted {
		sqlStr += `
		WHERE deleted_at IS NULL`
	}
	sqlStr += `
		ORDER BY created_at DESC, id DESC;`

	rows, err := l.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	records := make([]model.UploadRecord, 0)
	for rows.Next() {
		var r model.UploadRecord
		var status string
		var deletedAt sql.NullTime
		err = rows.Scan(&r.ID, &r.RunID, &r.FileName, &r.FileURI, &r.MIMEType, &r.AudioPath, &r.OutputPath,
			&r.Model, &status, &r.ErrorKind, &r.ErrorMessage, &r.CreatedAt, &r.UpdatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		r.Status = model.UploadStatus(status)
		if deletedAt.Valid {
			t := deletedAt.Time
			r.DeletedAt = &t
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return records, nil
}

// execOne runs an update that must touch at least one row.
func (l *Ledger) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
