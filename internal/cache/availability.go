package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

const keyPrefix = "availability"

func NewRedis(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func Key(professionalID uint, day string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, professionalID, day)
}

// Generation counters live outside keyPrefix so professional scans skip them.
func dayGenKey(professionalID uint, day string) string {
	return fmt.Sprintf("%s-gen:%d:%s", keyPrefix, professionalID, day)
}

func professionalGenKey(professionalID uint) string {
	return fmt.Sprintf("%s-gen:%d", keyPrefix, professionalID)
}

const genTTL = 48 * time.Hour

var errStaleGeneration = errors.New("availability generation moved")

// AvailabilityCache stores computed open slots per professional and day.
// Redis failures degrade to cache misses.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *AvailabilityCache) Get(ctx context.Context, professionalID uint, day string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, Key(professionalID, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.Warn("availability cache read failed", slog.Any("error", err))
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Generation identifies the invalidations seen so far for one day. It
// changes whenever the day or the whole professional is invalidated.
func (c *AvailabilityCache) Generation(ctx context.Context, professionalID uint, day string) string {
	gen, err := readGeneration(ctx, c.rdb, professionalID, day)
	if err != nil {
		c.log.Warn("availability cache generation read failed", slog.Any("error", err))
		return ""
	}
	return gen
}

// Set stores slots only if no invalidation happened since gen was read.
func (c *AvailabilityCache) Set(ctx context.Context, professionalID uint, day, gen string, slots []string) {
	if gen == "" {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, professionalID, day)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(professionalID, day), raw, c.ttl)
			return nil
		})
		return err
	}, dayGenKey(professionalID, day), professionalGenKey(professionalID))

	switch {
	case err == nil, errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
	default:
		c.log.Warn("availability cache write failed", slog.Any("error", err))
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, professionalID uint, days ...string) error {
	if len(days) == 0 {
		return nil
	}
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, day := range days {
			pipe.Incr(ctx, dayGenKey(professionalID, day))
			pipe.Expire(ctx, dayGenKey(professionalID, day), genTTL)
			pipe.Del(ctx, Key(professionalID, day))
		}
		return nil
	})
	return err
}

type mgetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func readGeneration(ctx context.Context, r mgetter, professionalID uint, day string) (string, error) {
	vals, err := r.MGet(ctx, dayGenKey(professionalID, day), professionalGenKey(professionalID)).Result()
	if err != nil {
		return "", err
	}
	parts := [2]string{"0", "0"}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			parts[i] = s
		}
	}
	return parts[0] + "." + parts[1], nil
}

// InvalidateProfessional drops every cached day of one professional.
func (c *AvailabilityCache) InvalidateProfessional(ctx context.Context, professionalID uint) error {
	pattern := fmt.Sprintf("%s:%d:*", keyPrefix, professionalID)

	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, professionalGenKey(professionalID))
	pipe.Expire(ctx, professionalGenKey(professionalID), genTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Handle makes the cache an audit sink: writes that touch a professional's
// calendar drop the affected days. A schedule change drops them all.
func (c *AvailabilityCache) Handle(ctx context.Context, ev audit.Event) error {
	if ev.ProfessionalID == 0 {
		return nil
	}
	if ev.Action == audit.ActionProfessionalUpdated {
		return c.InvalidateProfessional(ctx, ev.ProfessionalID)
	}
	if len(ev.Days) == 0 {
		return nil
	}
	return c.Invalidate(ctx, ev.ProfessionalID, ev.Days...)
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, uint, string) ([]string, bool)  { return nil, false }
func (Nop) Generation(context.Context, uint, string) string     { return "" }
func (Nop) Set(context.Context, uint, string, string, []string) {}
