// Package service runs the full verification pipeline: rule evaluation,
// component scoring, aggregation, and decision side effects.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"vouch/internal/events"
	"vouch/internal/verification/cache"
	"vouch/internal/verification/condition"
	"vouch/internal/verification/metrics"
	"vouch/internal/verification/models"
	"vouch/internal/verification/rules"
	"vouch/internal/verification/scoring"
	dErrors "vouch/pkg/domain-errors"
)

const defaultRuleParallelism = 4

// AuditRecorder persists an immutable record of each evaluation.
type AuditRecorder interface {
	Record(ctx context.Context, eval models.Evaluation) error
}

// TokenIssuer mints a verification token for allowed sessions.
type TokenIssuer interface {
	Issue(sessionID string, score float64, decision models.Decision) (string, error)
}

type Service struct {
	store       *rules.Store
	cache       cache.Cache
	recorder    AuditRecorder
	publisher   events.Publisher
	tokens      TokenIssuer
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	now         func() time.Time
	parallelism int
}

type Option func(*Service)

func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithTokenIssuer(tokens TokenIssuer) Option {
	return func(s *Service) {
		s.tokens = tokens
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRuleParallelism caps how many rule conditions evaluate concurrently.
func WithRuleParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

func New(store *rules.Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("rule store is required")
	}

	svc := &Service{
		store:       store,
		logger:      slog.Default(),
		tracer:      noop.NewTracerProvider().Tracer(""),
		now:         time.Now,
		parallelism: defaultRuleParallelism,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Evaluate scores a verification context and returns the decision. Scoring
// never fails: malformed signals and broken rule conditions degrade the
// score instead of erroring. Only invalid input produces an error.
func (s *Service) Evaluate(ctx context.Context, vc *models.VerificationContext) (models.Evaluation, error) {
	if vc == nil {
		return models.Evaluation{}, dErrors.New(dErrors.CodeBadRequest, "verification context is required")
	}
	if vc.SessionID == "" {
		return models.Evaluation{}, dErrors.New(dErrors.CodeBadRequest, "sessionId is required")
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, vc.SessionID); err == nil {
			return cached, nil
		}
	}

	ctx, span := s.tracer.Start(ctx, "verification.Evaluate",
		trace.WithAttributes(attribute.String("session.id", vc.SessionID)))
	defer span.End()

	started := s.now()

	results := s.evaluateRules(vc)

	breakdown := models.ScoreBreakdown{
		Rule:        scoring.RuleScore(results),
		Behavioral:  scoring.BehavioralScore(vc),
		Fingerprint: scoring.FingerprintScore(vc),
		Facial:      scoring.FacialScore(vc),
		DataQuality: scoring.DataQualityScore(vc, started),
	}
	breakdown.FinalScore = scoring.Aggregate(breakdown)

	thresholds := s.store.Thresholds()
	decision := scoring.Decide(breakdown.FinalScore, thresholds)

	eval := models.Evaluation{
		SessionID:   vc.SessionID,
		Decision:    decision,
		Breakdown:   breakdown,
		Reasons:     scoring.Reasons(breakdown),
		RuleResults: results,
		EvaluatedAt: started.UTC(),
	}

	if decision == models.DecisionAllow && s.tokens != nil {
		token, err := s.tokens.Issue(vc.SessionID, breakdown.FinalScore, decision)
		if err != nil {
			s.logger.Error("token issuance failed", "session_id", vc.SessionID, "error", err)
		} else {
			eval.Token = token
		}
	}

	span.SetAttributes(
		attribute.String("verification.decision", string(decision)),
		attribute.Float64("verification.score", breakdown.FinalScore),
	)
	s.metrics.IncrementDecision(string(decision))
	s.metrics.ObserveFinalScore(breakdown.FinalScore)
	s.metrics.ObserveEvaluateLatency(s.now().Sub(started))

	s.logger.Info("verification evaluated",
		"session_id", vc.SessionID,
		"decision", decision,
		"final_score", breakdown.FinalScore,
	)

	s.emit(ctx, eval)

	return eval, nil
}

// evaluateRules runs every active rule against the context. Results keep
// the store's rule order regardless of completion order, and a rule whose
// condition cannot be evaluated is reported with its error rather than
// aborting the pass.
func (s *Service) evaluateRules(vc *models.VerificationContext) []models.RuleResult {
	active := s.store.ActiveRules()
	results := make([]models.RuleResult, len(active))

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i, rule := range active {
		g.Go(func() error {
			result := models.RuleResult{
				ID:          rule.ID,
				Name:        rule.Name,
				Weight:      rule.Weight,
				Action:      rule.Action,
				Condition:   rule.Condition,
				Description: rule.Description,
			}
			matched, err := condition.Evaluate(rule.Condition, vc)
			if err != nil {
				result.Error = err.Error()
				s.metrics.IncrementRuleError(rule.ID)
				s.logger.Warn("rule condition failed",
					"rule_id", rule.ID,
					"session_id", vc.SessionID,
					"error", err,
				)
			} else if matched {
				result.Passed = true
				result.Score = rule.Weight
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// emit runs the post-decision side effects. None of them may fail the
// evaluation: a lost audit row or event is logged and the caller still
// gets their decision.
func (s *Service) emit(ctx context.Context, eval models.Evaluation) {
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, eval); err != nil {
			s.logger.Error("audit record failed", "session_id", eval.SessionID, "error", err)
		}
	}
	if s.publisher != nil {
		event := events.DecisionEvent{
			SessionID:  eval.SessionID,
			Decision:   eval.Decision,
			FinalScore: eval.Breakdown.FinalScore,
			Reasons:    eval.Reasons,
			EmittedAt:  eval.EvaluatedAt,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("decision event publish failed", "session_id", eval.SessionID, "error", err)
		}
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, eval); err != nil {
			s.logger.Error("decision cache write failed", "session_id", eval.SessionID, "error", err)
		}
	}
}
