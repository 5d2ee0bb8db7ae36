package slot

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/ow-rando/internal/redis"
)

const (
	// Key pattern: slot:{run_id}, one hash field per player
	slotKeyPrefix = "slot:"
	defaultTTL    = 24 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedis creates a new Redis repository for slots
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores a slot in the run's hash and refreshes the run's TTL
func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	stored := copySlot(input.Slot)
	stored.CreatedAt = r.clock.Now()
	stored.ExpiresAt = stored.CreatedAt.Add(ttl)

	slotJSON, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal slot")
	}

	key := r.buildKey(stored.RunID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, playerField(stored.Player), slotJSON)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store slot in Redis")
	}

	return &SaveOutput{Slot: stored}, nil
}

// Get retrieves one player's slot
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	slotJSON, err := r.client.HGet(ctx, r.buildKey(input.RunID), playerField(input.Player)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound(errSlotNotFound)
		}
		return nil, errors.Wrapf(err, "failed to get slot from Redis")
	}

	stored, err := decodeSlot(slotJSON)
	if err != nil {
		return nil, err
	}
	if r.clock.Now().After(stored.ExpiresAt) {
		return nil, errors.NotFound("slot has expired")
	}

	return &GetOutput{Slot: stored}, nil
}

// List retrieves every live slot of a run
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, r.buildKey(input.RunID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list slots from Redis")
	}

	now := r.clock.Now()
	slots := make([]*Slot, 0, len(fields))
	for _, slotJSON := range fields {
		stored, err := decodeSlot(slotJSON)
		if err != nil {
			return nil, err
		}
		if now.After(stored.ExpiresAt) {
			continue
		}
		slots = append(slots, stored)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Player < slots[j].Player })

	return &ListOutput{Slots: slots}, nil
}

// Delete removes every slot of a run
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if err := validateRun(input.RunID); err != nil {
		return nil, err
	}

	key := r.buildKey(input.RunID)
	count, err := r.client.HLen(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count slots in Redis")
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slots from Redis")
	}

	return &DeleteOutput{SlotsDeleted: int(count)}, nil
}

func (r *redisRepository) buildKey(runID string) string {
	return slotKeyPrefix + runID
}

func playerField(player int) string {
	return strconv.Itoa(player)
}

func decodeSlot(slotJSON string) (*Slot, error) {
	var stored Slot
	if err := json.Unmarshal([]byte(slotJSON), &stored); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal slot")
	}
	return &stored, nil
}
