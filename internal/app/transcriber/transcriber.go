package transcriber

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gemini-transcriber/internal/app/api/gemini"
	apperrors "gemini-transcriber/internal/app/errors"
	"gemini-transcriber/internal/app/metrics"
	"gemini-transcriber/internal/app/model"
	"gemini-transcriber/internal/app/repository"
	"gemini-transcriber/internal/app/util/files"
)

const transcriptPerm = 0644

// Transcriber uploads an audio file, asks a model about it and saves the answer.
type Transcriber struct {
	newService gemini.Factory
	logger     *zap.Logger
	metrics    *metrics.Metrics
	ledger     repository.UploadLedger
	newRunID   func() string
}

// Result describes a successful run.
type Result struct {
	RunID      string
	OutputPath string
	Model      string
	File       gemini.UploadedFile
	Text       string
}

func New(newService gemini.Factory, logger *zap.Logger, opts ...Option) *Transcriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Transcriber{
		newService: newService,
		logger:     logger,
		newRunID:   defaultRunID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transcribe runs upload, generate and write once. The output's parent
// directory must already exist. On failure the returned error carries the
// failing step as an errors.Kind and the output file is not touched.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, outputPath string, opts ...CallOption) (*Result, error) {
	req := newRequest(opts)
	runID := t.newRunID()
	log := t.logger.With(
		zap.String("run_id", runID),
		zap.String("audio", audioPath),
		zap.String("output", outputPath),
		zap.String("model", req.model),
	)
	state := &run{t: t, log: log, runID: runID}

	svc, err := t.newService(ctx)
	if err != nil {
		return nil, state.fail(ctx, apperrors.Wrap(err, apperrors.KindConfig, "failed to open session"))
	}

	log.Debug("Uploading audio")
	start := time.Now()
	file, err := svc.Upload(ctx, audioPath)
	t.observeStage(metrics.StageUpload, start)
	if err != nil {
		return nil, state.fail(ctx, apperrors.Wrap(err, apperrors.KindUpload, "upload failed"))
	}
	state.uploaded(ctx, file, audioPath, outputPath, req.model)
	req.stageDone(metrics.StageUpload)

	log.Debug("Generating content", zap.String("file", file.Name()))
	start = time.Now()
	resp, err := svc.Generate(ctx, req.model, req.prompt, file)
	t.observeStage(metrics.StageGenerate, start)
	if req.deleteUpload {
		state.deleteUpload(ctx, svc, file)
	}
	if err != nil {
		return nil, state.fail(ctx, apperrors.Wrap(err, apperrors.KindGenerate, "generate content failed"))
	}
	req.stageDone(metrics.StageGenerate)

	text := resp.Text()
	start = time.Now()
	err = files.WriteFileAtomic(outputPath, []byte(text), transcriptPerm)
	t.observeStage(metrics.StageWrite, start)
	if err != nil {
		return nil, state.fail(ctx, apperrors.Wrap(err, apperrors.KindWrite, "file write failed"))
	}
	req.stageDone(metrics.StageWrite)

	state.completed(ctx)
	if t.metrics != nil {
		t.metrics.RecordSuccess(len(text))
	}
	log.Info("Transcription saved", zap.Int("bytes", len(text)))

	return &Result{
		RunID:      runID,
		OutputPath: outputPath,
		Model:      req.model,
		File:       file,
		Text:       text,
	}, nil
}

func (t *Transcriber) observeStage(stage string, start time.Time) {
	if t.metrics != nil {
		t.metrics.ObserveStage(stage, time.Since(start))
	}
}

// run holds per-call bookkeeping. Ledger problems are logged and never
// change the outcome of the call. Ledger writes ignore cancellation so a
// timed-out run is still recorded.
type run struct {
	t        *Transcriber
	log      *zap.Logger
	runID    string
	inLedger bool
}

func (r *run) uploaded(ctx context.Context, file gemini.UploadedFile, audioPath, outputPath, modelName string) {
	r.log.Info("Audio uploaded", zap.String("file", file.Name()), zap.String("mime_type", file.MIMEType()))
	if r.t.ledger == nil {
		return
	}
	_, err := r.t.ledger.RecordUpload(context.WithoutCancel(ctx), model.UploadRecord{
		RunID:      r.runID,
		FileName:   file.Name(),
		FileURI:    file.URI(),
		MIMEType:   file.MIMEType(),
		AudioPath:  audioPath,
		OutputPath: outputPath,
		Model:      modelName,
		Status:     model.StatusUploaded,
	})
	if err != nil {
		r.log.Warn("Failed to record upload", zap.Error(err))
		return
	}
	r.inLedger = true
}

func (r *run) deleteUpload(ctx context.Context, svc gemini.Service, file gemini.UploadedFile) {
	if err := svc.Delete(ctx, file.Name()); err != nil {
		r.log.Warn("Failed to delete uploaded file", zap.String("file", file.Name()), zap.Error(err))
		return
	}
	r.log.Debug("Deleted uploaded file", zap.String("file", file.Name()))
	if r.inLedger {
		if err := r.t.ledger.MarkDeleted(context.WithoutCancel(ctx), file.Name(), time.Now()); err != nil {
			r.log.Warn("Failed to mark upload deleted", zap.Error(err))
		}
	}
}

func (r *run) completed(ctx context.Context) {
	if !r.inLedger {
		return
	}
	if err := r.t.ledger.MarkCompleted(context.WithoutCancel(ctx), r.runID); err != nil {
		r.log.Warn("Failed to mark upload completed", zap.Error(err))
	}
}

func (r *run) fail(ctx context.Context, err error) error {
	kind := apperrors.KindOf(err)
	if r.t.metrics != nil {
		r.t.metrics.RecordFailure(kind)
	}
	if r.inLedger {
		if lerr := r.t.ledger.MarkFailed(context.WithoutCancel(ctx), r.runID, kind.String(), err.Error()); lerr != nil {
			r.log.Warn("Failed to mark upload failed", zap.Error(lerr))
		}
	}
	r.log.Error("Transcription failed", zap.Stringer("kind", kind), zap.Error(err))
	return err
}
