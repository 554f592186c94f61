package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// LineupStream is the Redis stream carrying lineup lifecycle events.
// The websocket layer tails it to push updates to connected rosters.
const LineupStream = "lineups.events.softball"

// Event kinds published to LineupStream
const (
	EventBattingGenerated  = "batting_order.generated"
	EventFieldingGenerated = "fielding_lineup.generated"
	EventAttendanceChanged = "attendance.changed"
)

// RedisStreamPublisher publishes events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishLineupEvent publishes a lineup lifecycle event for a game.
// The payload is the freshly generated lineup so stream consumers do
// not have to read back through the database.
func (rsp *RedisStreamPublisher) PublishLineupEvent(ctx context.Context, kind string, gameID int, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: LineupStream,
		Values: map[string]interface{}{
			"kind":      kind,
			"game_id":   gameID,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishAttendanceChanged announces an RSVP change on a game
func (rsp *RedisStreamPublisher) PublishAttendanceChanged(ctx context.Context, gameID, playerID int, status string) error {
	return rsp.PublishLineupEvent(ctx, EventAttendanceChanged, gameID, map[string]interface{}{
		"player_id": playerID,
		"status":    status,
	})
}
