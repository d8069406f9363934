package scoring

import "vouch/internal/verification/models"

// Component reason thresholds. A sub-score below (or for facial, at or
// above) its bound adds a fixed reason string.
const (
	componentWeakBelow    = 40.0
	facialStrongAtOrAbove = 80.0
)

// Reasons produces the ordered, deterministic explanation list for a score
// breakdown: one headline bucketed by final-score quartile, then component
// reasons in fixed order. Callers and tests rely on the exact ordering.
func Reasons(b models.ScoreBreakdown) []string {
	reasons := []string{headline(b.FinalScore)}

	if b.Rule < componentWeakBelow {
		reasons = append(reasons, "multiple policy rules failed")
	}
	if b.Behavioral < componentWeakBelow {
		reasons = append(reasons, "insufficient or suspicious behavioral data")
	}
	if b.Fingerprint < componentWeakBelow {
		reasons = append(reasons, "incomplete or suspicious device fingerprint")
	}
	if b.Facial >= facialStrongAtOrAbove {
		reasons = append(reasons, "facial verification succeeded")
	}
	if b.DataQuality < componentWeakBelow {
		reasons = append(reasons, "stale or low-quality verification data")
	}
	return reasons
}

func headline(final float64) string {
	switch {
	case final >= 75:
		return "high confidence in verification signals"
	case final >= 50:
		return "moderate confidence in verification signals"
	case final >= 25:
		return "low confidence in verification signals"
	default:
		return "very low confidence in verification signals"
	}
}
