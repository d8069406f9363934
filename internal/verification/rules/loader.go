package rules

import (
	"encoding/json"
	"fmt"
	"os"

	"vouch/internal/verification/models"
)

// FileConfig is the on-disk rule configuration format: an ordered rule list
// plus thresholds. Order in the file is evaluation order.
type FileConfig struct {
	Rules      []models.Rule     `json:"rules"`
	Thresholds models.Thresholds `json:"thresholds"`
}

// LoadFile reads and decodes a rule configuration file. It does not touch
// any store; callers decide when to Apply.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule config: %w", err)
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode rule config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply loads the configuration into the store. A validation failure leaves
// the store's active rule set untouched.
func (c *FileConfig) Apply(store *Store) error {
	return store.Load(c.Rules, c.Thresholds)
}
