package scoring

import (
	"vouch/internal/verification/condition"
	"vouch/internal/verification/models"
)

// Frequency bands for interaction telemetry, in events per second. Inside
// the normal band a signal is mildly positive; above the anomalous bound it
// is penalized. Keystroke flooding is the strongest automation tell.
const (
	clickAnomalousPerSec     = 5.0
	scrollAnomalousPerSec    = 10.0
	keystrokeAnomalousPerSec = 10.0
)

// BehavioralScore rates interaction telemetry in [0,100]. A context with no
// behavioral section at all scores a fixed low 30: absence of telemetry is
// itself a weak negative signal, distinct from "collected but inactive".
func BehavioralScore(vc *models.VerificationContext) float64 {
	if vc == nil || vc.Behavioral == nil {
		return 30
	}
	look := condition.ContextLookup(vc)
	score := 50.0

	if duration, ok := look("behavioral.sessionDuration").Number(); ok {
		switch {
		case duration > 60000:
			score += 10
		case duration < 10000:
			score -= 20
		}
	}

	if events, ok := look("behavioral.metrics.totalEvents").Number(); ok {
		switch {
		case events > 20:
			score += 10
		case events < 5:
			score -= 15
		}
	}

	score += frequencyAdjustment(look("behavioral.metrics.clickFrequency"), clickAnomalousPerSec, 10)
	score += frequencyAdjustment(look("behavioral.metrics.scrollFrequency"), scrollAnomalousPerSec, 10)
	score += frequencyAdjustment(look("behavioral.metrics.keystrokeFrequency"), keystrokeAnomalousPerSec, 15)

	if distance, ok := look("behavioral.metrics.mouseDistance").Number(); ok {
		switch {
		case distance > 100:
			score += 5
		case distance < 10:
			score -= 10
		}
	}

	return clamp(score)
}

func frequencyAdjustment(v condition.Value, anomalousAbove, penalty float64) float64 {
	freq, ok := v.Number()
	if !ok {
		return 0
	}
	switch {
	case freq > anomalousAbove:
		return -penalty
	case freq > 0:
		return 5
	}
	return 0
}
