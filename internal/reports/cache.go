package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache wraps redis with a singleflight group so a burst of identical report
// requests runs the underlying queries once. A nil redis client degrades to
// singleflight only.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Do returns the cached value for key into dest, filling it via fill on miss.
func (c *Cache) Do(ctx context.Context, key string, dest any, fill func() (any, error)) error {
	if c.client != nil {
		if b, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return json.Unmarshal(b, dest)
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		val, err := fill()
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		if c.client != nil {
			c.client.Set(ctx, key, b, c.ttl)
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dest)
}
