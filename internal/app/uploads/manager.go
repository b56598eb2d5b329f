package uploads

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"gemini-transcriber/internal/app/api/gemini"
	"gemini-transcriber/internal/app/model"
	"gemini-transcriber/internal/app/repository"
)

// Manager lists and cleans up the remote files recorded in the ledger.
type Manager struct {
	ledger     repository.UploadLedger
	newService gemini.Factory
	logger     *zap.Logger
	now        func() time.Time
}

// PurgeReport summarises one purge pass.
type PurgeReport struct {
	Deleted []string
	// Expired files were already gone on the remote side.
	Expired []string
	Failed  map[string]error
}

func NewManager(ledger repository.UploadLedger, newService gemini.Factory, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		ledger:     ledger,
		newService: newService,
		logger:     logger,
		now:        time.Now,
	}
}

func (m *Manager) List(ctx context.Context, includeDeleted bool) ([]model.UploadRecord, error) {
	return m.ledger.ListUploads(ctx, includeDeleted)
}

// Purge deletes every recorded remote file that is not yet marked deleted.
// A failure on one file is reported and the loop moves on.
func (m *Manager) Purge(ctx context.Context) (*PurgeReport, error) {
	records, err := m.ledger.ListUploads(ctx, false)
	if err != nil {
		return nil, err
	}

	report := &PurgeReport{Failed: map[string]error{}}
	names := lo.Uniq(lo.Map(records, func(r model.UploadRecord, _ int) string { return r.FileName }))
	if len(names) == 0 {
		return report, nil
	}

	svc, err := m.newService(ctx)
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if ctx.Err() != nil {
			report.Failed[name] = ctx.Err()
			continue
		}

		err := svc.Delete(ctx, name)
		expired := gemini.IsNotFound(err)
		if err != nil && !expired {
			m.logger.Warn("Failed to delete remote file", zap.String("file", name), zap.Error(err))
			report.Failed[name] = err
			continue
		}

		if err := m.ledger.MarkDeleted(ctx, name, m.now()); err != nil {
			m.logger.Warn("Failed to mark upload deleted", zap.String("file", name), zap.Error(err))
			report.Failed[name] = err
			continue
		}
		if expired {
			report.Expired = append(report.Expired, name)
		} else {
			report.Deleted = append(report.Deleted, name)
		}
	}

	m.logger.Info("Purge finished",
		zap.Int("deleted", len(report.Deleted)),
		zap.Int("expired", len(report.Expired)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}
