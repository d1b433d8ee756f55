package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"holland-test/internal/catalog"
	"holland-test/internal/config"
	"holland-test/internal/domain"
)

// Metrics receives assessment events. Implementations must be safe for concurrent use.
type Metrics interface {
	SessionStarted()
	TraitSubmitted(code domain.TraitCode, defaulted int)
	ResultServed(kind string, partial bool)
	ResultRejected(kind string)
}

const (
	ResultKindReport       = "report"
	ResultKindDistribution = "distribution"
)

// AssessmentService orchestrates assessment sessions: it opens one collector
// per catalog trait, records submissions and resolves results on demand.
type AssessmentService struct {
	catalog *catalog.Catalog
	store   SessionStore
	limiter SessionRateLimiter
	metrics Metrics
	mode    string
	logger  *zap.Logger
	now     func() time.Time
}

var ErrAssessmentServiceNotConfigured = errors.New("assessment service not configured")

func NewAssessmentService(
	cat *catalog.Catalog,
	store SessionStore,
	limiter SessionRateLimiter,
	metrics Metrics,
	mode string,
	logger *zap.Logger,
) *AssessmentService {
	if mode != config.ResultsModePartial {
		mode = config.ResultsModeStrict
	}
	return &AssessmentService{
		catalog: cat,
		store:   store,
		limiter: limiter,
		metrics: metrics,
		mode:    mode,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Catalog returns the traits in catalog order.
func (s *AssessmentService) Catalog() []domain.Trait {
	return s.catalog.Traits()
}

func (s *AssessmentService) Mode() string {
	return s.mode
}

// StartSession opens a new session with every collector open. clientKey is
// used for rate limiting only.
func (s *AssessmentService) StartSession(ctx context.Context, clientKey string) (*Session, error) {
	if s == nil || s.catalog == nil || s.store == nil {
		return nil, ErrAssessmentServiceNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.limiter != nil {
		quota := s.limiter.Allow(ctx, clientKey)
		if !quota.Allowed {
			s.log().Warn("assessment session rate limited",
				zap.String("client", clientKey),
				zap.Int("used", quota.Used),
				zap.Int("limit", quota.Limit),
			)
			return nil, &RateLimitedError{RetryAfter: quota.RetryAfter}
		}
	}

	session := newSession(uuid.NewString(), s.mode, s.catalog, s.now())
	if err := s.store.Save(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	if s.metrics != nil {
		s.metrics.SessionStarted()
	}
	s.log().Info("assessment session started", zap.String("session_id", session.ID), zap.String("mode", s.mode))
	return session, nil
}

// Session looks up an open session.
func (s *AssessmentService) Session(ctx context.Context, sessionID string) (*Session, error) {
	if s == nil || s.store == nil {
		return nil, ErrAssessmentServiceNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session, ok := s.store.Get(strings.TrimSpace(sessionID))
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SelectResponse records one answer without submitting the trait.
func (s *AssessmentService) SelectResponse(ctx context.Context, sessionID string, code domain.TraitCode, index int, level domain.Level) error {
	collector, err := s.collector(ctx, sessionID, code)
	if err != nil {
		return err
	}
	return collector.Select(index, level)
}

// SubmitTrait applies levels in statement order and submits the trait.
// Statements without a level in levels keep their current selection.
func (s *AssessmentService) SubmitTrait(ctx context.Context, sessionID string, code domain.TraitCode, levels []domain.Level) (domain.SubmitResult, error) {
	collector, err := s.collector(ctx, sessionID, code)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if len(levels) > len(collector.Trait().Statements) {
		return domain.SubmitResult{}, fmt.Errorf("%w: %d levels for %d statements", ErrInvalidResponse, len(levels), len(collector.Trait().Statements))
	}
	// A rejected request must not leave selections behind.
	for i, level := range levels {
		if !level.Valid() {
			return domain.SubmitResult{}, fmt.Errorf("%w: statement %d level %d out of range", ErrInvalidResponse, i, level)
		}
	}
	for i, level := range levels {
		if err := collector.Select(i, level); err != nil {
			return domain.SubmitResult{}, err
		}
	}
	return s.submit(sessionID, collector)
}

// Submit closes an already answered collector. It is the path used by the
// interactive front-ends, which call Select directly.
func (s *AssessmentService) Submit(sessionID string, collector *ResponseCollector) (domain.SubmitResult, error) {
	return s.submit(sessionID, collector)
}

func (s *AssessmentService) submit(sessionID string, collector *ResponseCollector) (domain.SubmitResult, error) {
	res, err := collector.Submit()
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if s.metrics != nil {
		s.metrics.TraitSubmitted(res.Code, res.Defaulted)
	}
	fields := []zap.Field{
		zap.String("session_id", sessionID),
		zap.String("trait", string(res.Code)),
		zap.Int("score", res.Score),
	}
	if res.Defaulted > 0 {
		s.log().Info("trait submitted with defaulted responses", append(fields, zap.Int("defaulted", res.Defaulted))...)
	} else {
		s.log().Info("trait submitted", fields...)
	}
	return res, nil
}

// AbandonTrait closes a collector without scoring it.
func (s *AssessmentService) AbandonTrait(ctx context.Context, sessionID string, code domain.TraitCode) error {
	collector, err := s.collector(ctx, sessionID, code)
	if err != nil {
		return err
	}
	if err := collector.Close(); err != nil {
		return err
	}
	s.log().Info("trait abandoned", zap.String("session_id", sessionID), zap.String("trait", string(code)))
	return nil
}

func (s *AssessmentService) Progress(ctx context.Context, sessionID string) (domain.Progress, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.Progress{}, err
	}
	return session.Progress(), nil
}

// Results resolves the dominant trait and builds its report.
func (s *AssessmentService) Results(ctx context.Context, sessionID string) (domain.Report, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.Report{}, err
	}
	return s.ReportFor(session)
}

// ReportFor resolves the report for a session the caller already holds.
func (s *AssessmentService) ReportFor(session *Session) (domain.Report, error) {
	snapshot, err := s.gate(session, ResultKindReport)
	if err != nil {
		return domain.Report{}, err
	}

	dominant, err := ResolveDominant(snapshot, s.catalog.Order())
	if err != nil {
		s.rejected(ResultKindReport)
		return domain.Report{}, err
	}
	trait, ok := s.catalog.Get(dominant.Code)
	if !ok {
		return domain.Report{}, fmt.Errorf("%w: %q", ErrUnknownTrait, dominant.Code)
	}

	report := BuildReport(trait, dominant.Score)
	report.Missing = session.Missing()
	report.Partial = len(report.Missing) > 0
	if s.metrics != nil {
		s.metrics.ResultServed(ResultKindReport, report.Partial)
	}
	s.log().Info("report resolved",
		zap.String("session_id", session.ID),
		zap.String("dominant", string(report.Dominant)),
		zap.Bool("partial", report.Partial),
	)
	return report, nil
}

// Distribution computes every scored trait's share of the total.
func (s *AssessmentService) Distribution(ctx context.Context, sessionID string) (domain.Distribution, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return domain.Distribution{}, err
	}
	return s.DistributionFor(session)
}

func (s *AssessmentService) DistributionFor(session *Session) (domain.Distribution, error) {
	snapshot, err := s.gate(session, ResultKindDistribution)
	if err != nil {
		return domain.Distribution{}, err
	}

	dist, err := ComputeDistribution(snapshot, s.catalog.Order(), s.traitName)
	if err != nil {
		s.rejected(ResultKindDistribution)
		return domain.Distribution{}, err
	}
	dist.Missing = session.Missing()
	dist.Partial = len(dist.Missing) > 0
	if s.metrics != nil {
		s.metrics.ResultServed(ResultKindDistribution, dist.Partial)
	}
	return dist, nil
}

func (s *AssessmentService) CloseSession(ctx context.Context, sessionID string) error {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.log().Info("assessment session closed", zap.String("session_id", session.ID))
	return nil
}

// gate rejects an empty aggregate in every mode and a partial one in strict mode.
func (s *AssessmentService) gate(session *Session, kind string) ([]domain.TraitScore, error) {
	snapshot := session.Aggregator().Snapshot()
	if len(snapshot) == 0 {
		s.rejected(kind)
		return nil, fmt.Errorf("%w: no trait has been submitted", ErrIncompleteAggregate)
	}
	if session.Mode == config.ResultsModeStrict && !session.Ready() {
		s.rejected(kind)
		return nil, fmt.Errorf("%w: waiting for %s", ErrIncompleteAggregate, joinCodes(session.Missing()))
	}
	return snapshot, nil
}

func (s *AssessmentService) rejected(kind string) {
	if s.metrics != nil {
		s.metrics.ResultRejected(kind)
	}
}

func (s *AssessmentService) collector(ctx context.Context, sessionID string, code domain.TraitCode) (*ResponseCollector, error) {
	session, err := s.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	normalized := domain.TraitCode(strings.ToUpper(strings.TrimSpace(string(code))))
	if !normalized.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTrait, code)
	}
	return session.Collector(normalized)
}

func (s *AssessmentService) traitName(code domain.TraitCode) string {
	if t, ok := s.catalog.Get(code); ok {
		return t.Name
	}
	return string(code)
}

func (s *AssessmentService) log() *zap.Logger {
	if s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

func joinCodes(codes []domain.TraitCode) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
