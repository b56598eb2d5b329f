package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apperrors "gemini-transcriber/internal/app/errors"
)

const namespace = "transcriber"

// Stage names used as the "stage" label.
const (
	StageUpload   = "upload"
	StageGenerate = "generate"
	StageWrite    = "write"
)

// Stages lists the stages of a run in order.
var Stages = []string{StageUpload, StageGenerate, StageWrite}

// Metrics records run outcomes on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	runs            *prometheus.CounterVec
	failures        *prometheus.CounterVec
	stageDuration   *prometheus.HistogramVec
	transcriptBytes prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Transcription runs by result.",
		}, []string{"result"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed transcription runs by error kind.",
		}, []string{"kind"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each stage of a run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"stage"}),
		transcriptBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transcript_bytes",
			Help:      "Size of the last transcript written.",
		}),
	}
	m.registry.MustRegister(m.runs, m.failures, m.stageDuration, m.transcriptBytes)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) RecordSuccess(transcriptBytes int) {
	m.runs.WithLabelValues("success").Inc()
	m.transcriptBytes.Set(float64(transcriptBytes))
}

func (m *Metrics) RecordFailure(kind apperrors.Kind) {
	m.runs.WithLabelValues("failure").Inc()
	m.failures.WithLabelValues(kind.String()).Inc()
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
