package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/salaoflow/salon-scheduler/internal/models"
)

const salonTTL = 24 * time.Hour

// SalonCache keeps JSON snapshots of salon rows in Redis. It backs the
// read-path fallback of the persistence gateway: snapshots are written
// through on every successful primary read and served when the primary is
// unreachable.
type SalonCache struct {
	rdb *redis.Client
}

func NewSalonCache(rdb *redis.Client) *SalonCache {
	return &SalonCache{rdb: rdb}
}

func keyByID(id uint) string      { return fmt.Sprintf("salon:id:%d", id) }
func keyBySlug(slug string) string { return fmt.Sprintf("salon:slug:%s", slug) }

func (c *SalonCache) Put(ctx context.Context, salon *models.Salon) error {
	raw, err := json.Marshal(salon)
	if err != nil {
		return err
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, keyByID(salon.ID), raw, salonTTL)
	pipe.Set(ctx, keyBySlug(salon.Slug), raw, salonTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *SalonCache) GetByID(ctx context.Context, id uint) (*models.Salon, error) {
	return c.get(ctx, keyByID(id))
}

func (c *SalonCache) GetBySlug(ctx context.Context, slug string) (*models.Salon, error) {
	return c.get(ctx, keyBySlug(slug))
}

func (c *SalonCache) get(ctx context.Context, key string) (*models.Salon, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var salon models.Salon
	if err := json.Unmarshal(raw, &salon); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (c *SalonCache) Invalidate(ctx context.Context, salon *models.Salon) {
	c.rdb.Del(ctx, keyByID(salon.ID), keyBySlug(salon.Slug))
}
