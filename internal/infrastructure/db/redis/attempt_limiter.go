package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter caps flag submissions per (user, challenge) in a fixed window.
// Key format: ctf:attempts:<user_id>:<challenge_id>
type AttemptLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewAttemptLimiter allows up to limit attempts per window.
func NewAttemptLimiter(client *redis.Client, limit int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts this attempt and reports whether it is within the window's
// budget. The window's TTL is created together with the counter in one
// MULTI/EXEC, so a counter can never outlive its window.
func (l *AttemptLimiter) Allow(ctx context.Context, userID, challengeID string) (bool, error) {
	key := l.key(userID, challengeID)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window)
		incr = pipe.Incr(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("attempt incr: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *AttemptLimiter) key(userID, challengeID string) string {
	return fmt.Sprintf("%sattempts:%s:%s", keyPrefix, userID, challengeID)
}
