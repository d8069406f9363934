// Package rules owns the policy rule collection and decision thresholds.
// Readers work from immutable snapshots so an in-flight evaluation is never
// affected by a concurrent reload; writers serialize on a mutex and swap
// the snapshot pointer.
package rules

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"vouch/internal/verification/models"
	"vouch/pkg/platform/sentinel"
)

// ErrDuplicateID is returned by AddTemporary when the rule id is taken.
var ErrDuplicateID = fmt.Errorf("duplicate rule id: %w", sentinel.ErrConflict)

// ValidationError wraps all per-rule and threshold failures from a rejected
// load. The previous rule set stays active when it is returned.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule configuration rejected: %v", errors.Join(e.Problems...))
}

// snapshot is an immutable view of the rule set. Never mutated after
// publication; writers build a fresh one and swap the pointer.
type snapshot struct {
	rules      []models.Rule
	index      map[string]int
	thresholds models.Thresholds
}

// Store holds the ordered rule collection and thresholds. The zero value is
// not usable; NewStore seeds the built-in defaults so the engine is never
// rule-less, even before the first configuration load.
type Store struct {
	writeMu sync.Mutex
	snap    atomic.Pointer[snapshot]
}

// NewStore builds a store pre-populated with the default rule set and
// thresholds.
func NewStore() *Store {
	s := &Store{}
	s.snap.Store(buildSnapshot(DefaultRules(), DefaultThresholds()))
	return s
}

func buildSnapshot(list []models.Rule, th models.Thresholds) *snapshot {
	cp := make([]models.Rule, len(list))
	copy(cp, list)
	idx := make(map[string]int, len(cp))
	for i, r := range cp {
		idx[r.ID] = i
	}
	return &snapshot{rules: cp, index: idx, thresholds: th}
}

func validate(list []models.Rule, th models.Thresholds) error {
	var problems []error
	seen := make(map[string]bool, len(list))
	for i, r := range list {
		if err := r.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("rule %d: %w", i, err))
			continue
		}
		if seen[r.ID] {
			problems = append(problems, fmt.Errorf("rule %d: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true
	}
	if err := th.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Load atomically replaces the rule set and thresholds. The whole batch is
// validated first; on any failure the previous state is retained and a
// ValidationError describing every problem is returned. An empty rule list
// is valid; an operator may deliberately run threshold-only scoring.
func (s *Store) Load(list []models.Rule, th models.Thresholds) error {
	if err := validate(list, th); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.snap.Store(buildSnapshot(list, th))
	return nil
}

// AddTemporary validates and appends a runtime-injected rule. The stored
// copy is always marked temporary regardless of the input flag. Fails with
// ErrDuplicateID without mutating the store when the id exists.
func (s *Store) AddTemporary(rule models.Rule) error {
	rule.Temporary = true
	if err := rule.Validate(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.snap.Load()
	if _, exists := cur.index[rule.ID]; exists {
		return fmt.Errorf("rule %q: %w", rule.ID, ErrDuplicateID)
	}
	next := append(append([]models.Rule{}, cur.rules...), rule)
	s.snap.Store(buildSnapshot(next, cur.thresholds))
	return nil
}

// RemoveTemporary removes the rule with the given id if, and only if, it
// was added as temporary. Unknown ids and permanent rules are a no-op.
func (s *Store) RemoveTemporary(id string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.snap.Load()
	i, exists := cur.index[id]
	if !exists || !cur.rules[i].Temporary {
		return
	}
	next := make([]models.Rule, 0, len(cur.rules)-1)
	next = append(next, cur.rules[:i]...)
	next = append(next, cur.rules[i+1:]...)
	s.snap.Store(buildSnapshot(next, cur.thresholds))
}

// ActiveRules returns the enabled rules in insertion order. Evaluation
// order has no effect on the math but must be deterministic for
// reproducible logs and reason output.
func (s *Store) ActiveRules() []models.Rule {
	cur := s.snap.Load()
	out := make([]models.Rule, 0, len(cur.rules))
	for _, r := range cur.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Thresholds returns the current decision thresholds.
func (s *Store) Thresholds() models.Thresholds {
	return s.snap.Load().thresholds
}

// Stats counts rules by action and weight sign for observability.
func (s *Store) Stats() models.RuleStats {
	cur := s.snap.Load()
	stats := models.RuleStats{
		Total:    len(cur.rules),
		ByAction: map[models.Action]int{},
	}
	for _, r := range cur.rules {
		if r.Enabled {
			stats.Enabled++
		}
		if r.Temporary {
			stats.Temporary++
		}
		stats.ByAction[r.Action]++
		switch {
		case r.Weight > 0:
			stats.Rewarding++
		case r.Weight < 0:
			stats.Penalizing++
		}
	}
	return stats
}
