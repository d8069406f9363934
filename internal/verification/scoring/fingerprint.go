package scoring

import (
	"strings"

	"github.com/mssola/useragent"

	"vouch/internal/verification/condition"
	"vouch/internal/verification/models"
)

// requiredIdentityFields are the fingerprint fields a genuine browser
// always reports. The user agent is checked separately through the
// suspicious-token penalty.
var requiredIdentityFields = []string{
	"language",
	"platform",
	"timezone",
	"screenResolution",
	"colorDepth",
	"hardwareConcurrency",
}

// suspiciousUATokens flag automated clients. Matching is a case-insensitive
// substring test.
var suspiciousUATokens = []string{"bot", "crawler", "spider", "scraper"}

// FingerprintScore rates device fingerprint completeness and plausibility
// in [0,100]. A context with no fingerprint at all scores 0: fingerprints
// are mandatory, so their absence is a hard negative rather than neutral.
func FingerprintScore(vc *models.VerificationContext) float64 {
	if vc == nil || vc.Fingerprint == nil {
		return 0
	}
	look := condition.ContextLookup(vc)
	score := 50.0

	present := 0
	for _, field := range requiredIdentityFields {
		if look("fingerprint." + field).Truthy() {
			present++
		}
	}
	score += 30 * float64(present) / float64(len(requiredIdentityFields))

	if canvas, ok := look("fingerprint.canvas").Str(); ok && len(canvas) > 100 {
		score += 5
	}
	if webgl, ok := look("fingerprint.webgl").Str(); ok && webgl != "" && webgl != "unsupported" {
		score += 5
	}
	if audio, ok := look("fingerprint.audio").Str(); ok && audio != "" && audio != "error" {
		score += 5
	}
	if fonts, ok := look("fingerprint.fonts").Raw().([]any); ok && len(fonts) > 5 {
		score += 5
	}

	if ua, ok := look("fingerprint.userAgent").Str(); ok && suspiciousUserAgent(ua) {
		score -= 30
	}

	return clamp(score)
}

func suspiciousUserAgent(ua string) bool {
	lower := strings.ToLower(ua)
	for _, token := range suspiciousUATokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	// Recognized crawler UAs without the literal tokens still count.
	return useragent.New(ua).Bot()
}
