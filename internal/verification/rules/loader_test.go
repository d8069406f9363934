package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/verification/models"
)

const sampleConfig = `{
	"rules": [
		{
			"id": "blocklist-ua",
			"name": "Blocklisted user agent",
			"condition": "fingerprint.userAgent.includes(\"HeadlessChrome\")",
			"weight": -50,
			"action": "deny",
			"enabled": true
		},
		{
			"id": "trusted-platform",
			"name": "Trusted platform",
			"condition": "fingerprint.platform == 'MacIntel'",
			"weight": 10,
			"action": "allow",
			"enabled": true
		}
	],
	"thresholds": {"allow": 75, "review": 45, "deny": 0}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("valid config round-trips through a store", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, sampleConfig))
		require.NoError(t, err)
		require.Len(t, cfg.Rules, 2)

		store := NewStore()
		require.NoError(t, cfg.Apply(store))

		rules := store.ActiveRules()
		require.Len(t, rules, 2)
		assert.Equal(t, "blocklist-ua", rules[0].ID)
		assert.Equal(t, models.Thresholds{Allow: 75, Review: 45, Deny: 0}, store.Thresholds())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "{not json"))
		require.Error(t, err)
	})

	t.Run("invalid rules rejected at apply, not load", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, `{
			"rules": [{"id": "", "name": "", "condition": "", "weight": 0, "action": "allow"}],
			"thresholds": {"allow": 70, "review": 40, "deny": 0}
		}`))
		require.NoError(t, err)

		store := NewStore()
		require.Error(t, cfg.Apply(store))
		assert.Len(t, store.ActiveRules(), 5)
	})
}
