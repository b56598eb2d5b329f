package transcriber

import (
	"github.com/google/uuid"

	"gemini-transcriber/internal/app/metrics"
	"gemini-transcriber/internal/app/repository"
	"gemini-transcriber/internal/config"
)

// Observer is told when each stage of a run finishes.
type Observer interface {
	StageDone(stage string)
}

// Option configures a Transcriber.
type Option func(*Transcriber)

func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Transcriber) { t.metrics = m }
}

// WithLedger records every upload so orphaned remote files can be found later.
func WithLedger(l repository.UploadLedger) Option {
	return func(t *Transcriber) { t.ledger = l }
}

func WithRunIDGenerator(fn func() string) Option {
	return func(t *Transcriber) { t.newRunID = fn }
}

func defaultRunID() string {
	return uuid.NewString()
}

type request struct {
	model        string
	prompt       string
	deleteUpload bool
	observer     Observer
}

// CallOption adjusts a single Transcribe call.
type CallOption func(*request)

func WithModel(model string) CallOption {
	return func(r *request) { r.model = model }
}

// WithPrompt replaces the default prompt. The text is sent verbatim, even when empty.
func WithPrompt(prompt string) CallOption {
	return func(r *request) { r.prompt = prompt }
}

// WithDeleteUpload removes the remote file once generation has finished.
func WithDeleteUpload(enabled bool) CallOption {
	return func(r *request) { r.deleteUpload = enabled }
}

func WithObserver(o Observer) CallOption {
	return func(r *request) { r.observer = o }
}

func newRequest(opts []CallOption) request {
	r := request{
		model:  config.DefaultModel,
		prompt: config.DefaultPrompt,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r request) stageDone(stage string) {
	if r.observer != nil {
		r.observer.StageDone(stage)
	}
}
