package scoring

import "vouch/internal/verification/models"

// Component weights. Rule outcomes dominate; data quality is a tiebreaker.
const (
	weightRule        = 0.40
	weightBehavioral  = 0.25
	weightFingerprint = 0.20
	weightFacial      = 0.10
	weightDataQuality = 0.05
)

// Aggregate computes the weighted final score from the component
// sub-scores, clamped to [0,100].
func Aggregate(b models.ScoreBreakdown) float64 {
	final := b.Rule*weightRule +
		b.Behavioral*weightBehavioral +
		b.Fingerprint*weightFingerprint +
		b.Facial*weightFacial +
		b.DataQuality*weightDataQuality
	return clamp(final)
}

// Decide maps a final score onto a decision. Boundaries are inclusive: a
// score exactly at the allow threshold allows.
func Decide(final float64, th models.Thresholds) models.Decision {
	switch {
	case final >= th.Allow:
		return models.DecisionAllow
	case final >= th.Review:
		return models.DecisionReview
	default:
		return models.DecisionDeny
	}
}
