package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/owaspcebu/ctf-platform/internal/core/ports"
)

const generationKey = keyPrefix + "leaderboard:gen"

// LeaderboardCache stores rendered leaderboard pages. Every page key embeds
// the current generation, so bumping the generation orphans all cached
// pages at once and they age out through their TTL.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get looks up a page under the current generation and returns that
// generation, which the caller hands back to Set once it has built the page.
func (c *LeaderboardCache) Get(ctx context.Context, page, perPage int) (*ports.LeaderboardPage, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, c.pageKey(gen, page, perPage)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("leaderboard cache get: %w", err)
	}

	var p ports.LeaderboardPage
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, gen, false, fmt.Errorf("leaderboard cache decode: %w", err)
	}
	return &p, gen, true, nil
}

// Set stores p under gen, the generation observed before p was read from the
// database. If Invalidate ran in between, the page lands under a generation
// nobody reads anymore instead of shadowing the new ranking.
func (c *LeaderboardCache) Set(ctx context.Context, gen int64, p *ports.LeaderboardPage) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("leaderboard cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.pageKey(gen, p.Page, p.PerPage), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("leaderboard cache set: %w", err)
	}
	return nil
}

// Invalidate starts a new generation.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("leaderboard cache invalidate: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("leaderboard cache generation: %w", err)
	}
	return gen, nil
}

func (c *LeaderboardCache) pageKey(gen int64, page, perPage int) string {
	return fmt.Sprintf("%sleaderboard:%d:%d:%d", keyPrefix, gen, page, perPage)
}
