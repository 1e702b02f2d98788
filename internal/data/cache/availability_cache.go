package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AvailabilityCache stores free-unit counts per (room, interval). The cached
// value is advisory: capacity-affecting writes always re-derive ground truth
// from the reservation store under the room lock, then invalidate here.
type AvailabilityCache interface {
	GetFreeUnits(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time) (int, bool)
	SetFreeUnits(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, freeUnits int)
	InvalidateRoom(ctx context.Context, roomTypeID uuid.UUID)
}

type redisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewAvailabilityCache builds a Redis-backed cache. A nil client disables
// caching entirely; every lookup misses.
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) AvailabilityCache {
	if client == nil {
		return &noopAvailabilityCache{}
	}
	return &redisAvailabilityCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "availability")),
	}
}

func availabilityKey(roomTypeID uuid.UUID, checkIn, checkOut time.Time) string {
	return fmt.Sprintf("availability:%s:%s:%s",
		roomTypeID.String(),
		checkIn.Format("2006-01-02"),
		checkOut.Format("2006-01-02"),
	)
}

func (c *redisAvailabilityCache) GetFreeUnits(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time) (int, bool) {
	val, err := c.client.Get(ctx, availabilityKey(roomTypeID, checkIn, checkOut)).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		c.log.Warn("Availability cache read failed", zap.Error(err))
		return 0, false
	}

	freeUnits, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return freeUnits, true
}

func (c *redisAvailabilityCache) SetFreeUnits(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, freeUnits int) {
	err := c.client.Set(ctx, availabilityKey(roomTypeID, checkIn, checkOut), strconv.Itoa(freeUnits), c.ttl).Err()
	if err != nil {
		c.log.Warn("Availability cache write failed", zap.Error(err))
	}
}

func (c *redisAvailabilityCache) InvalidateRoom(ctx context.Context, roomTypeID uuid.UUID) {
	pattern := fmt.Sprintf("availability:%s:*", roomTypeID.String())

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Availability cache invalidation failed",
				zap.Error(err),
				zap.String("key", iter.Val()),
			)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Availability cache scan failed",
			zap.Error(err),
			zap.String("room_type_id", roomTypeID.String()),
		)
	}
}

// noopAvailabilityCache is used when Redis is not configured or unreachable
type noopAvailabilityCache struct{}

func (*noopAvailabilityCache) GetFreeUnits(context.Context, uuid.UUID, time.Time, time.Time) (int, bool) {
	return 0, false
}

func (*noopAvailabilityCache) SetFreeUnits(context.Context, uuid.UUID, time.Time, time.Time, int) {}

func (*noopAvailabilityCache) InvalidateRoom(context.Context, uuid.UUID) {}
