package scoring

import (
	"math"
	"time"

	"vouch/internal/verification/condition"
	"vouch/internal/verification/models"
)

const (
	freshRequestAgeMs = 60_000
	staleRequestAgeMs = 300_000
	clockSkewWindowMs = 300_000
)

// DataQualityScore rates freshness and cross-signal consistency in [0,100].
// now is injected so the scorer stays pure and evaluations replayable.
func DataQualityScore(vc *models.VerificationContext, now time.Time) float64 {
	if vc == nil {
		return 50
	}
	look := condition.ContextLookup(vc)
	score := 50.0

	ageMs := float64(now.UnixMilli() - vc.Timestamp)
	switch {
	case ageMs < freshRequestAgeMs:
		score += 10
	case ageMs > staleRequestAgeMs:
		score -= 20
	}

	if vc.Fingerprint != nil {
		score += 10
	}
	if vc.Behavioral != nil {
		score += 10
	}
	if vc.Facial != nil && !look("facial.error").Truthy() {
		score += 10
	}

	fpTS, fpOK := look("fingerprint.timestamp").Number()
	bhTS, bhOK := look("behavioral.timestamp").Number()
	if fpOK && bhOK && math.Abs(fpTS-bhTS) <= clockSkewWindowMs {
		score += 5
	}

	return clamp(score)
}
