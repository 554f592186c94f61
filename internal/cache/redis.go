package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openrec/dugout/internal/store"
)

// Lineup cache entries are short-lived: attendance keeps changing up
// until game time and a stale lineup is worse than a recomputed one.
const lineupTTL = 10 * time.Minute

// RedisCache handles caching and fast state storage
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func battingKey(gameID int) string {
	return fmt.Sprintf("lineup:batting:%d", gameID)
}

func fieldingKey(gameID int) string {
	return fmt.Sprintf("lineup:fielding:%d", gameID)
}

// GetBattingOrder returns the cached batting order for a game, or
// (nil, nil) on a cache miss
func (rc *RedisCache) GetBattingOrder(ctx context.Context, gameID int) ([]*store.BattingSlot, error) {
	raw, err := rc.client.Get(ctx, battingKey(gameID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var slots []*store.BattingSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SetBattingOrder caches a game's batting order
func (rc *RedisCache) SetBattingOrder(ctx context.Context, gameID int, slots []*store.BattingSlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, battingKey(gameID), data, lineupTTL).Err()
}

// GetFieldingLineup returns the cached fielding lineup for a game, or
// (nil, nil) on a cache miss
func (rc *RedisCache) GetFieldingLineup(ctx context.Context, gameID int) ([]*store.FieldingAssignment, error) {
	raw, err := rc.client.Get(ctx, fieldingKey(gameID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var assignments []*store.FieldingAssignment
	if err := json.Unmarshal([]byte(raw), &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// SetFieldingLineup caches a game's full fielding lineup
func (rc *RedisCache) SetFieldingLineup(ctx context.Context, gameID int, assignments []*store.FieldingAssignment) error {
	data, err := json.Marshal(assignments)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, fieldingKey(gameID), data, lineupTTL).Err()
}

// InvalidateLineups drops both cached lineups for a game. Called
// whenever attendance changes or a lineup is regenerated.
func (rc *RedisCache) InvalidateLineups(ctx context.Context, gameID int) error {
	return rc.client.Del(ctx, battingKey(gameID), fieldingKey(gameID)).Err()
}
