package diff

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"lexdiff/internal/diff/metrics"
	"lexdiff/internal/statute"
)

var tracer = otel.Tracer("lexdiff/internal/diff")

// DiffCache is the memoization surface the service uses; the concrete
// backends live in the optimize package.
type DiffCache interface {
	Get(ctx context.Context, key string) (*StatuteDiff, bool, error)
	Set(ctx context.Context, key string, d *StatuteDiff) error
}

// Archive persists computed diffs for later retrieval and rollback.
type Archive interface {
	Save(ctx context.Context, d *StatuteDiff) error
	ListByStatute(ctx context.Context, statuteID string) ([]*StatuteDiff, error)
	GetLatest(ctx context.Context, statuteID string) (*StatuteDiff, error)
}

// CacheKeyFunc derives the memoization key for an input pair.
type CacheKeyFunc func(old, new *statute.Statute) string

// Service orchestrates one diff invocation: cache lookup, semantic diff,
// archival, and observability. The differ itself stays pure; everything
// with side effects lives here.
type Service struct {
	differ   *Differ
	cache    DiffCache
	cacheKey CacheKeyFunc
	archive  Archive
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithCache enables memoization of repeated diffs.
func WithCache(cache DiffCache, keyFunc CacheKeyFunc) ServiceOption {
	return func(s *Service) {
		s.cache = cache
		s.cacheKey = keyFunc
	}
}

// WithArchive persists every computed diff.
func WithArchive(archive Archive) ServiceOption {
	return func(s *Service) {
		s.archive = archive
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the diff service with its dependencies.
func NewService(differ *Differ, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{differ: differ, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate computes (or recalls) the diff between two statute versions.
func (s *Service) Evaluate(ctx context.Context, old, new *statute.Statute) (*StatuteDiff, error) {
	ctx, span := tracer.Start(ctx, "diff.Evaluate", trace.WithAttributes(
		attribute.String("statute.id", safeID(old)),
	))
	defer span.End()
	start := time.Now()

	if s.cache != nil && old != nil && new != nil {
		key := s.cacheKey(old, new)
		if cached, ok, err := s.cache.Get(ctx, key); err != nil {
			// Cache trouble must not block a diff; fall through to compute.
			s.logger.WarnContext(ctx, "diff cache lookup failed", "error", err)
		} else if ok {
			s.metrics.IncrementCacheLookup("hit")
			return cached, nil
		}
		s.metrics.IncrementCacheLookup("miss")
	}

	result, err := s.differ.Diff(old, new)
	if err != nil {
		s.logger.ErrorContext(ctx, "statute diff failed",
			"statute_id", safeID(old),
			"error", err,
		)
		return nil, err
	}

	s.metrics.ObserveDiffLatency(time.Since(start))
	s.metrics.IncrementOutcome(result.Impact.Severity.String())
	s.metrics.IncrementAlgorithm(string(s.differ.AlgorithmFor(old, new)))
	span.SetAttributes(
		attribute.Int("diff.changes", len(result.Changes)),
		attribute.String("diff.severity", result.Impact.Severity.String()),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey(old, new), result); err != nil {
			s.logger.WarnContext(ctx, "diff cache store failed", "error", err)
		}
	}
	if s.archive != nil {
		if err := s.archive.Save(ctx, result); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "statute diff computed",
		"statute_id", result.StatuteID,
		"changes", len(result.Changes),
		"severity", result.Impact.Severity.String(),
	)
	return result, nil
}

// GenerateRollback inverts a forward diff. Pure apart from tracing.
func (s *Service) GenerateRollback(ctx context.Context, forward *StatuteDiff) (*StatuteDiff, error) {
	_, span := tracer.Start(ctx, "diff.GenerateRollback")
	defer span.End()
	if forward == nil {
		return nil, ErrNilDiff
	}
	return Rollback(forward), nil
}

// History lists archived diffs for a statute, oldest first.
func (s *Service) History(ctx context.Context, statuteID string) ([]*StatuteDiff, error) {
	if s.archive == nil {
		return nil, nil
	}
	return s.archive.ListByStatute(ctx, statuteID)
}

// Latest returns the most recently archived diff for a statute. The archive's
// not-found error passes through for the handler to map.
func (s *Service) Latest(ctx context.Context, statuteID string) (*StatuteDiff, error) {
	if s.archive == nil {
		return nil, ErrNoArchive
	}
	return s.archive.GetLatest(ctx, statuteID)
}

func safeID(s *statute.Statute) string {
	if s == nil {
		return ""
	}
	return s.ID
}
