package service

import (
	"errors"

	"vouch/internal/verification/models"
	"vouch/internal/verification/rules"
	dErrors "vouch/pkg/domain-errors"
)

// LoadRules atomically replaces the active rule set and thresholds. On
// validation failure the previous set stays in effect.
func (s *Service) LoadRules(list []models.Rule, thresholds models.Thresholds) error {
	if err := s.store.Load(list, thresholds); err != nil {
		var vErr *rules.ValidationError
		if errors.As(err, &vErr) {
			return dErrors.Wrap(dErrors.CodeBadRequest, "invalid rule set", err)
		}
		return dErrors.Wrap(dErrors.CodeInternal, "failed to load rules", err)
	}
	s.logger.Info("rule set replaced", "rules", len(list))
	return nil
}

// AddTemporaryRule inserts a rule flagged temporary into the active set.
func (s *Service) AddTemporaryRule(rule models.Rule) error {
	if err := s.store.AddTemporary(rule); err != nil {
		if errors.Is(err, rules.ErrDuplicateID) {
			return dErrors.Wrap(dErrors.CodeConflict, "rule id already exists", err)
		}
		return dErrors.Wrap(dErrors.CodeBadRequest, "invalid temporary rule", err)
	}
	s.logger.Info("temporary rule added", "rule_id", rule.ID)
	return nil
}

// RemoveTemporaryRule removes a temporary rule by id. Removing an unknown
// id, or an id that belongs to a permanent rule, is a no-op.
func (s *Service) RemoveTemporaryRule(id string) {
	s.store.RemoveTemporary(id)
	s.logger.Info("temporary rule removed", "rule_id", id)
}

// RuleStats summarizes the current rule set.
func (s *Service) RuleStats() models.RuleStats {
	return s.store.Stats()
}
