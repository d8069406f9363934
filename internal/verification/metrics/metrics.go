// Package metrics provides observability for the verification module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the verification module's Prometheus collectors. All
// methods are nil-safe so wiring metrics stays optional.
type Metrics struct {
	// Decisions by outcome
	Decisions *prometheus.CounterVec

	// Rules whose conditions failed to parse or evaluate
	RuleErrors *prometheus.CounterVec

	// Final score distribution
	FinalScore prometheus.Histogram

	// Full evaluation latency including the rule pass and all scorers
	EvaluateLatency prometheus.Histogram
}

// New creates and registers all verification metrics.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_verification_decisions_total",
			Help: "Total verification decisions by outcome",
		}, []string{"decision"}),

		RuleErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vouch_verification_rule_errors_total",
			Help: "Rule evaluations that produced a condition error, by rule id",
		}, []string{"rule_id"}),

		FinalScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vouch_verification_final_score",
			Help:    "Distribution of final confidence scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vouch_verification_evaluate_duration_seconds",
			Help:    "Duration of full verification evaluation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

// IncrementRuleError records a contained rule-condition failure.
func (m *Metrics) IncrementRuleError(ruleID string) {
	if m != nil {
		m.RuleErrors.WithLabelValues(ruleID).Inc()
	}
}

// ObserveFinalScore records a final confidence score.
func (m *Metrics) ObserveFinalScore(score float64) {
	if m != nil {
		m.FinalScore.Observe(score)
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
