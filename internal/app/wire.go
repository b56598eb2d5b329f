//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"gemini-transcriber/internal/app/metrics"
	"gemini-transcriber/internal/app/transcriber"
	"gemini-transcriber/internal/app/uploads"
	"gemini-transcriber/internal/config"
)

func InitializeTranscriber(ctx context.Context, settings *config.Settings, creds config.Credentials, logger *zap.Logger, m *metrics.Metrics) (*transcriber.Transcriber, func(), error) {
	wire.Build(provideServiceFactory, provideOptionalLedger, provideTranscriber)
	return nil, nil, nil
}

// InitializeUploadManager fails with ErrNoLedger when no ledger path is set.
func InitializeUploadManager(ctx context.Context, settings *config.Settings, creds config.Credentials, logger *zap.Logger) (*uploads.Manager, func(), error) {
	wire.Build(provideServiceFactory, provideRequiredLedger, uploads.NewManager)
	return nil, nil, nil
}
