package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"vouch/internal/verification/models"
	"vouch/pkg/platform/sentinel"
)

type StoreSuite struct {
	suite.Suite

	store *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
}

func (s *StoreSuite) validRule(id string) models.Rule {
	return models.Rule{
		ID:        id,
		Name:      "Test rule " + id,
		Condition: "timestamp > 0",
		Weight:    10,
		Action:    models.ActionAllow,
		Enabled:   true,
	}
}

func (s *StoreSuite) TestDefaultsSeededAtConstruction() {
	rules := s.store.ActiveRules()
	s.Len(rules, 5)
	s.Equal("default-bot-ua", rules[0].ID)
	s.Equal(models.Thresholds{Allow: 70, Review: 40, Deny: 0}, s.store.Thresholds())
}

func (s *StoreSuite) TestLoadReplacesAtomically() {
	th := models.Thresholds{Allow: 80, Review: 50, Deny: 10}
	err := s.store.Load([]models.Rule{s.validRule("r1"), s.validRule("r2")}, th)
	s.Require().NoError(err)

	rules := s.store.ActiveRules()
	s.Len(rules, 2)
	s.Equal("r1", rules[0].ID)
	s.Equal("r2", rules[1].ID)
	s.Equal(th, s.store.Thresholds())
}

func (s *StoreSuite) TestLoadEmptyRuleListIsValid() {
	err := s.store.Load(nil, DefaultThresholds())
	s.Require().NoError(err)
	s.Empty(s.store.ActiveRules())
}

func (s *StoreSuite) TestRejectedLoadKeepsPriorState() {
	s.Run("invalid rule", func() {
		bad := s.validRule("bad")
		bad.Condition = ""
		err := s.store.Load([]models.Rule{bad}, DefaultThresholds())

		var vErr *ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.NotEmpty(vErr.Problems)
		s.Len(s.store.ActiveRules(), 5)
	})

	s.Run("duplicate ids in batch", func() {
		err := s.store.Load([]models.Rule{s.validRule("dup"), s.validRule("dup")}, DefaultThresholds())
		s.Require().Error(err)
		s.Len(s.store.ActiveRules(), 5)
	})

	s.Run("misordered thresholds", func() {
		err := s.store.Load([]models.Rule{s.validRule("r1")}, models.Thresholds{Allow: 40, Review: 70, Deny: 0})
		s.Require().Error(err)
		s.Equal(DefaultThresholds(), s.store.Thresholds())
	})

	s.Run("all problems reported together", func() {
		bad1 := s.validRule("")
		bad2 := s.validRule("b2")
		bad2.Action = "explode"
		err := s.store.Load([]models.Rule{bad1, bad2}, DefaultThresholds())

		var vErr *ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Len(vErr.Problems, 2)
	})
}

func (s *StoreSuite) TestDisabledRulesExcludedFromActiveSet() {
	disabled := s.validRule("off")
	disabled.Enabled = false
	err := s.store.Load([]models.Rule{s.validRule("on"), disabled}, DefaultThresholds())
	s.Require().NoError(err)

	rules := s.store.ActiveRules()
	s.Len(rules, 1)
	s.Equal("on", rules[0].ID)
}

func (s *StoreSuite) TestAddTemporary() {
	s.Run("forces the temporary flag", func() {
		rule := s.validRule("temp-1")
		rule.Temporary = false
		s.Require().NoError(s.store.AddTemporary(rule))

		rules := s.store.ActiveRules()
		s.True(rules[len(rules)-1].Temporary)
	})

	s.Run("duplicate id rejected without mutation", func() {
		err := s.store.AddTemporary(s.validRule("temp-1"))
		s.Require().ErrorIs(err, ErrDuplicateID)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
		s.Len(s.store.ActiveRules(), 6)
	})

	s.Run("duplicate of a permanent rule rejected", func() {
		err := s.store.AddTemporary(s.validRule("default-bot-ua"))
		s.Require().ErrorIs(err, ErrDuplicateID)
	})

	s.Run("invalid rule rejected", func() {
		bad := s.validRule("temp-bad")
		bad.Weight = 0
		bad.Name = ""
		s.Require().Error(s.store.AddTemporary(bad))
	})
}

func (s *StoreSuite) TestRemoveTemporary() {
	s.Require().NoError(s.store.AddTemporary(s.validRule("temp-1")))

	s.Run("removes a temporary rule", func() {
		s.store.RemoveTemporary("temp-1")
		s.Len(s.store.ActiveRules(), 5)
	})

	s.Run("unknown id is a no-op", func() {
		s.store.RemoveTemporary("never-existed")
		s.Len(s.store.ActiveRules(), 5)
	})

	s.Run("permanent rules are not removable", func() {
		s.store.RemoveTemporary("default-bot-ua")
		s.Len(s.store.ActiveRules(), 5)
	})
}

func (s *StoreSuite) TestSnapshotIsolation() {
	before := s.store.ActiveRules()
	s.Require().NoError(s.store.Load([]models.Rule{s.validRule("new")}, DefaultThresholds()))

	// The slice handed out before the load still reflects the old state.
	s.Len(before, 5)

	// Mutating a returned slice does not leak into the store.
	after := s.store.ActiveRules()
	after[0].ID = "mutated"
	s.Equal("new", s.store.ActiveRules()[0].ID)
}

func (s *StoreSuite) TestStats() {
	temp := s.validRule("temp-1")
	s.Require().NoError(s.store.AddTemporary(temp))

	stats := s.store.Stats()
	s.Equal(6, stats.Total)
	s.Equal(6, stats.Enabled)
	s.Equal(1, stats.Temporary)
	s.Equal(3, stats.ByAction[models.ActionAllow])
	s.Equal(2, stats.ByAction[models.ActionDeny])
	s.Equal(1, stats.ByAction[models.ActionReview])
	s.Equal(3, stats.Rewarding)
	s.Equal(3, stats.Penalizing)
}
