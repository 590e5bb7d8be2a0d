// Package core wires the catalog, scorer, feedback log and report archive
// into the operations exposed by the HTTP API and the CLI.
package core

import (
	"time"

	"studyspace/internal/blob"
	"studyspace/internal/catalog"
	"studyspace/internal/feedback"
	"studyspace/internal/infra/persistence/memory"
	"studyspace/internal/scoring"
)

// Service is safe for concurrent use; all mutable state lives in the
// feedback repository and blob store.
type Service struct {
	catalog  *catalog.Catalog
	scorer   *scoring.Scorer
	feedback *feedback.Repository
	blobs    blob.Store
	logger   Logger
	metrics  MetricsRecorder
	tracer   Tracer
	now      func() time.Time
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the structured logger.
func WithLogger(l Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsRecorder sets the metrics sink.
func WithMetricsRecorder(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(t Tracer) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithBlobStore enables ExportReport.
func WithBlobStore(b blob.Store) ServiceOption {
	return func(s *Service) { s.blobs = b }
}

// WithScorer replaces the default scorer, e.g. one built from a custom range table.
func WithScorer(sc *scoring.Scorer) ServiceOption {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithClock overrides the time source used for sessions, readings and reports.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service. A nil catalog means the built-in one; a nil
// repository means an in-memory feedback log.
func NewService(cat *catalog.Catalog, repo *feedback.Repository, opts ...ServiceOption) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if repo == nil {
		repo = feedback.NewRepository(memory.NewStore())
	}
	s := &Service{
		catalog:  cat,
		scorer:   scoring.NewDefaultScorer(),
		feedback: repo,
		logger:   noopLogger{},
		metrics:  noopMetrics{},
		tracer:   noopTracer{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the location catalog the service reads from.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Scorer returns the scorer in use.
func (s *Service) Scorer() *scoring.Scorer { return s.scorer }
