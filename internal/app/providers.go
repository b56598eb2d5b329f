package app

import (
	"context"

	"go.uber.org/zap"

	"gemini-transcriber/internal/app/api/gemini"
	apperrors "gemini-transcriber/internal/app/errors"
	"gemini-transcriber/internal/app/metrics"
	"gemini-transcriber/internal/app/repository"
	"gemini-transcriber/internal/app/repository/sqlite"
	"gemini-transcriber/internal/app/transcriber"
	"gemini-transcriber/internal/config"
)

// ErrNoLedger is returned when a command needs the upload ledger but no path is configured.
var ErrNoLedger = apperrors.New(apperrors.KindConfig, "no ledger configured (set --ledger or ledger_path)")

// provideServiceFactory opens a fresh Gemini session per call with the explicit credentials.
func provideServiceFactory(settings *config.Settings, creds config.Credentials) gemini.Factory {
	var opts []gemini.Option
	if settings.MIMEType != "" {
		opts = append(opts, gemini.WithMIMEType(settings.MIMEType))
	}
	return gemini.NewFactory(creds, opts...)
}

// provideOptionalLedger yields a nil ledger when no path is configured.
func provideOptionalLedger(ctx context.Context, settings *config.Settings) (repository.UploadLedger, func(), error) {
	if settings.LedgerPath == "" {
		return nil, func() {}, nil
	}
	return openLedger(ctx, settings.LedgerPath)
}

func provideRequiredLedger(ctx context.Context, settings *config.Settings) (repository.UploadLedger, func(), error) {
	if settings.LedgerPath == "" {
		return nil, nil, ErrNoLedger
	}
	return openLedger(ctx, settings.LedgerPath)
}

func openLedger(ctx context.Context, path string) (repository.UploadLedger, func(), error) {
	ledger, err := sqlite.NewLedger(ctx, path)
	if err != nil {
		return nil, nil, apperrors.Wrapf(err, apperrors.KindConfig, "failed to open ledger %s", path)
	}
	return ledger, func() { ledger.Close() }, nil
}

func provideTranscriber(factory gemini.Factory, logger *zap.Logger, m *metrics.Metrics, ledger repository.UploadLedger) *transcriber.Transcriber {
	opts := []transcriber.Option{transcriber.WithMetrics(m)}
	if ledger != nil {
		opts = append(opts, transcriber.WithLedger(ledger))
	}
	return transcriber.New(factory, logger, opts...)
}
