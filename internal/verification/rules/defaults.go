package rules

import "vouch/internal/verification/models"

// DefaultThresholds are applied until a configuration load succeeds:
// 70+ allows, 40-70 goes to review, below 40 denies.
func DefaultThresholds() models.Thresholds {
	return models.Thresholds{Allow: 70, Review: 40, Deny: 0}
}

// DefaultRules is the built-in fallback rule set used at first boot so the
// engine is never rule-less. Deliberately conservative: it only reacts to
// signals every collector release has always reported.
func DefaultRules() []models.Rule {
	return []models.Rule{
		{
			ID:          "default-bot-ua",
			Name:        "Bot user agent",
			Condition:   `fingerprint.userAgent.includes("bot") || fingerprint.userAgent.includes("crawler")`,
			Weight:      -30,
			Action:      models.ActionDeny,
			Enabled:     true,
			Description: "User agent self-identifies as an automated client",
		},
		{
			ID:          "default-webdriver",
			Name:        "WebDriver present",
			Condition:   "fingerprint.webdriver == true",
			Weight:      -40,
			Action:      models.ActionDeny,
			Enabled:     true,
			Description: "navigator.webdriver reported true",
		},
		{
			ID:          "default-short-session",
			Name:        "Very short session",
			Condition:   "behavioral.sessionDuration < 5000",
			Weight:      -15,
			Action:      models.ActionReview,
			Enabled:     true,
			Description: "Session shorter than five seconds before verification",
		},
		{
			ID:          "default-engaged-session",
			Name:        "Engaged session",
			Condition:   "behavioral.sessionDuration > 60000 && behavioral.metrics.totalEvents > 20",
			Weight:      20,
			Action:      models.ActionAllow,
			Enabled:     true,
			Description: "Sustained interaction before verification",
		},
		{
			ID:          "default-rich-fingerprint",
			Name:        "Rich device fingerprint",
			Condition:   "fingerprint.canvas && fingerprint.webgl",
			Weight:      15,
			Action:      models.ActionAllow,
			Enabled:     true,
			Description: "Canvas and WebGL signals both collected",
		},
	}
}
