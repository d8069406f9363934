//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vouch/internal/verification/cache"
	"vouch/internal/verification/models"
	"vouch/pkg/platform/sentinel"
	"vouch/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite

	redis *containers.RedisContainer
	cache *cache.Redis
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = cache.NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestMissReturnsNotFound() {
	_, err := s.cache.Get(context.Background(), "unknown")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisCacheSuite) TestSetThenGetRoundTrips() {
	ctx := context.Background()
	eval := models.Evaluation{
		SessionID: "sess-1",
		Decision:  models.DecisionAllow,
		Breakdown: models.ScoreBreakdown{
			Rule:        64.5,
			Behavioral:  90,
			Fingerprint: 100,
			Facial:      80,
			DataQuality: 95,
			FinalScore:  81.2,
		},
		Reasons:     []string{"high confidence in verification signals"},
		Token:       "signed-token",
		EvaluatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(s.cache.Set(ctx, eval))

	got, err := s.cache.Get(ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(eval, got)
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	short := cache.NewRedis(s.redis.Client, time.Second)

	s.Require().NoError(short.Set(ctx, models.Evaluation{SessionID: "sess-1"}))

	_, err := short.Get(ctx, "sess-1")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		_, err := short.Get(ctx, "sess-1")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}
