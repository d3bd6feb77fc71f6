package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshcutsco/meat-delivery-platform/internal/api/middleware"
	"github.com/freshcutsco/meat-delivery-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	CheckOTPRateLimit(ctx context.Context, phone string) (bool, int, int, error)
}

// redisRateLimiter counts code requests per phone in a sliding window backed
// by a redis sorted set.
type redisRateLimiter struct {
	client *redis.Client
	cfg    *config.Config
}

func NewRateLimitRepo(client *redis.Client, cfg *config.Config) RateLimitRepository {
	return &redisRateLimiter{client: client, cfg: cfg}
}

// Returns isAllowed, attempts left, seconds to wait, error
func (r *redisRateLimiter) CheckOTPRateLimit(ctx context.Context, phone string) (bool, int, int, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := fmt.Sprintf("otp_requests:%s", phone)

	now := time.Now().Unix()

	// Only requests after 'this time' are counted.
	windowStart := now - int64(r.cfg.RateConfig.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	// drop entries that slid out of the window
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))

	// record the current request
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})

	// count requests currently in the window
	count := pipe.ZCard(ctx, key)

	// let the key expire once the window passes
	pipe.Expire(ctx, key, r.cfg.RateConfig.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.RateConfig.MaxAttempts - attempts

	if attempts >= r.cfg.RateConfig.MaxAttempts {

		oldestScoreCmd := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
			Key: key, Start: 0, Stop: 0,
		})

		scores, err := oldestScoreCmd.Result()
		if err != nil || len(scores) == 0 {
			logger.Error("Failed to get oldest request time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(r.cfg.RateConfig.WindowSize.Seconds()), fmt.Errorf("failed to get oldest request time: %w", err)
		}

		oldestTimestamp := int64(scores[0].Score)

		retryAfter := max((oldestTimestamp+int64(r.cfg.RateConfig.WindowSize.Seconds()))-now, 0)

		logger.Warn("OTP request rate limit exceeded", slog.String("phone", phone), slog.Int64("attempts", attempts))
		return false, 0, int(retryAfter), nil
	}

	logger.Debug("Rate limit check passed", slog.String("phone", phone), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}

// noopRateLimiter backs the memory and postgres storage modes, which have no
// redis to count against.
type noopRateLimiter struct{}

func NewNoopRateLimiter() RateLimitRepository {
	return &noopRateLimiter{}
}

func (n *noopRateLimiter) CheckOTPRateLimit(_ context.Context, _ string) (bool, int, int, error) {
	return true, 0, 0, nil
}
