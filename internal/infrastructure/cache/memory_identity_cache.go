package cache

import (
	"context"
	"sync"
	"time"

	"laundry_desk/internal/usecase/interfaces"
)

type memoryEntry struct {
	name    string
	expires time.Time
}

// MemoryIdentityCache is the single-instance fallback when no Redis address
// is configured.
type MemoryIdentityCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ interfaces.IIdentityCache = (*MemoryIdentityCache)(nil)

func NewMemoryIdentityCache(ttl time.Duration) *MemoryIdentityCache {
	return &MemoryIdentityCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryIdentityCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false, nil
	}
	return e.name, true, nil
}

func (c *MemoryIdentityCache) Set(_ context.Context, key, name string) error {
	e := memoryEntry{name: name}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}
