package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	repository "github.com/freshcutsco/meat-delivery-platform/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchAnyArgs ignores the time-derived scores inside the pipeline commands.
func matchAnyArgs(_, _ []interface{}) error { return nil }

func rateLimitConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RateConfig.MaxAttempts = 5
	cfg.RateConfig.WindowSize = 15 * time.Minute

	return cfg
}

func TestRateLimiter_CheckOTPRateLimit(t *testing.T) {
	ctx := context.Background()
	phone := "+919999999999"
	key := "otp_requests:" + phone

	t.Run("Success - Under The Limit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepo(client, rateLimitConfig())

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, 15*time.Minute).SetVal(true)

		allowed, remaining, retryAfter, err := limiter.CheckOTPRateLimit(ctx, phone)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Limit Exceeded", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepo(client, rateLimitConfig())

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, 15*time.Minute).SetVal(true)

		oldest := float64(time.Now().Add(-10 * time.Minute).Unix())
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: oldest, Member: "x"}})

		allowed, _, retryAfter, err := limiter.CheckOTPRateLimit(ctx, phone)

		require.NoError(t, err)
		assert.False(t, allowed)
		// five minutes of the fifteen minute window remain
		assert.InDelta(t, 300, retryAfter, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Unavailable", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		limiter := repository.NewRateLimitRepo(client, rateLimitConfig())

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetErr(redis.ErrClosed)

		allowed, _, _, err := limiter.CheckOTPRateLimit(ctx, phone)

		require.Error(t, err)
		assert.False(t, allowed)
	})

	t.Run("Success - Noop Limiter Always Allows", func(t *testing.T) {
		limiter := repository.NewNoopRateLimiter()

		allowed, _, _, err := limiter.CheckOTPRateLimit(ctx, phone)

		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
