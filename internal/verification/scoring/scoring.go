// Package scoring turns rule outcomes and raw signal quality into component
// sub-scores and a final 0-100 confidence score. Every function here is
// pure: unknown or garbled inputs degrade to neutral or low scores instead
// of propagating errors, because a trust decision must always be produced.
package scoring

import (
	"math"

	"vouch/internal/verification/models"
)

func clamp(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

// RuleScore aggregates non-error rule results into [0,100]. The sum of
// earned scores over the sum of absolute weights lands in [-1,1] and is
// renormalized via (ratio+1)*50. Errored rules are reported upstream but
// carry no weight here. With no weighted results the score is a neutral 50.
func RuleScore(results []models.RuleResult) float64 {
	var earned, total float64
	for _, r := range results {
		if r.Error != "" {
			continue
		}
		earned += r.Score
		total += math.Abs(r.Weight)
	}
	if total == 0 {
		return 50
	}
	return clamp((earned/total + 1) * 50)
}
