// Package models defines the entities the verification engine operates on:
// per-request contexts, policy rules, rule results, thresholds, and score
// breakdowns. Everything here is a plain value; ownership stays with the
// caller except for rules, which the rule store owns.
package models

// VerificationContext is the per-request bundle of collected signals the
// engine reasons over. The three signal sections are populated by the
// browser-side collector and may each be absent; the engine treats absence
// as data, never as an error. A context is immutable for the duration of
// one evaluation.
type VerificationContext struct {
	SessionID   string         `json:"sessionId"`
	Timestamp   int64          `json:"timestamp"` // epoch milliseconds
	Fingerprint map[string]any `json:"fingerprint,omitempty"`
	Behavioral  map[string]any `json:"behavioral,omitempty"`
	Facial      map[string]any `json:"facial,omitempty"`
}

// Section returns the named top-level signal map, or nil when the section
// was not collected.
func (c *VerificationContext) Section(name string) map[string]any {
	if c == nil {
		return nil
	}
	switch name {
	case "fingerprint":
		return c.Fingerprint
	case "behavioral":
		return c.Behavioral
	case "facial":
		return c.Facial
	}
	return nil
}
