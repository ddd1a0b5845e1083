package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a cached lookup result. A nil entity records a known absence.
type cacheEntry struct {
	entity  Entity
	expires time.Time
}

// CachedRepository is a write-through cache in front of another repository.
// Saves and removals update the cache after the inner write succeeds, so a
// single writer always reads its own writes.
type CachedRepository struct {
	inner Repository
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
}

// NewCachedRepository wraps inner. A zero ttl disables caching.
func NewCachedRepository(inner Repository, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(kind Kind, key string) string {
	return string(kind) + "\x00" + key
}

func (c *CachedRepository) Load(ctx context.Context, kind Kind, key string) (Entity, error) {
	if c.ttl <= 0 {
		return c.inner.Load(ctx, kind, key)
	}
	if err := validate(kind, key); err != nil {
		return nil, err
	}
	ck := cacheKey(kind, key)

	c.mu.RLock()
	entry, ok := c.entries[ck]
	c.mu.RUnlock()
	if ok && c.now().Before(entry.expires) {
		return entry.entity, nil
	}

	// Collapse concurrent misses for the same key into one inner load.
	result, err, _ := c.sf.Do(ck, func() (interface{}, error) {
		entity, err := c.inner.Load(ctx, kind, key)
		if err != nil {
			return nil, err
		}
		c.put(ck, entity)
		return entity, nil
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(Entity), nil
}

func (c *CachedRepository) Save(ctx context.Context, entity Entity) error {
	if err := c.inner.Save(ctx, entity); err != nil {
		c.Invalidate(entity.Kind(), entity.Key())
		return err
	}
	if c.ttl > 0 {
		c.put(cacheKey(entity.Kind(), entity.Key()), entity)
	}
	return nil
}

func (c *CachedRepository) Remove(ctx context.Context, kind Kind, key string) error {
	if err := c.inner.Remove(ctx, kind, key); err != nil {
		c.Invalidate(kind, key)
		return err
	}
	if c.ttl > 0 {
		c.put(cacheKey(kind, key), nil)
	}
	return nil
}

// Invalidate drops the cached entry for key.
func (c *CachedRepository) Invalidate(kind Kind, key string) {
	c.mu.Lock()
	delete(c.entries, cacheKey(kind, key))
	c.mu.Unlock()
}

func (c *CachedRepository) put(ck string, entity Entity) {
	c.mu.Lock()
	c.entries[ck] = cacheEntry{entity: entity, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Inner returns the decorated repository.
func (c *CachedRepository) Inner() Repository {
	return c.inner
}
