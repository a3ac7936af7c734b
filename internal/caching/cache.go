package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL keeps payloads for the length of a typical bench or scenario run.
const DefaultTTL = 10 * time.Minute

type CacheEntry struct {
	Value      []byte
	Expiration time.Time
}

// Cache memoises file contents by key. Concurrent misses for the same key
// share one load.
type Cache struct {
	data      sync.Map
	group     singleflight.Group
	ttl       time.Duration
	itemCount int32
	now       func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{ttl: ttl, now: time.Now}
}

func (c *Cache) GetOrCreate(key string, createFn func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}
	c.CleanUp()

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		v, err := createFn()
		if err != nil {
			return nil, err
		}

		if _, loaded := c.data.Swap(key, CacheEntry{Value: v, Expiration: c.now().Add(c.ttl)}); !loaded {
			atomic.AddInt32(&c.itemCount, 1)
		}
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	return value.([]byte), nil
}

func (c *Cache) Len() int {
	return int(atomic.LoadInt32(&c.itemCount))
}

func (c *Cache) CleanUp() {
	if atomic.LoadInt32(&c.itemCount) == 0 {
		return
	}

	now := c.now()
	c.data.Range(func(key, value interface{}) bool {
		entry := value.(CacheEntry)
		if entry.Expiration.Before(now) {
			if _, loaded := c.data.LoadAndDelete(key); loaded {
				atomic.AddInt32(&c.itemCount, -1)
			}
		}
		return true
	})
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	value, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}

	entry := value.(CacheEntry)
	if !entry.Expiration.After(c.now()) {
		return nil, false
	}

	return entry.Value, true
}
