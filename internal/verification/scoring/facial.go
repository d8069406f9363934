package scoring

import (
	"vouch/internal/verification/condition"
	"vouch/internal/verification/models"
)

// FacialScore rates the optional facial capture categorically: absent is
// neutral (the feature is opt-in), a capture error is a mild negative, and
// usable image data is a strong positive.
func FacialScore(vc *models.VerificationContext) float64 {
	if vc == nil || vc.Facial == nil {
		return 50
	}
	look := condition.ContextLookup(vc)

	if look("facial.error").Truthy() {
		return 40
	}
	if img, ok := look("facial.imageData").Str(); ok && img != "" {
		return 80
	}
	// Present but neither usable nor explicitly errored: treat like a
	// failed capture.
	return 40
}
