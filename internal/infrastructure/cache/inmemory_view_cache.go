package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/saleflow/internal/domain/catalog"
)

type viewEntry struct {
	arch      string
	expiresAt time.Time // zero means no expiry
}

// InMemoryViewCache implements catalog.ViewCache in process memory.
// Expired entries are dropped when read.
type InMemoryViewCache struct {
	mu      sync.RWMutex
	entries map[string]viewEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryViewCache creates an in-memory cache. A zero ttl keeps entries forever.
func NewInMemoryViewCache(ttl time.Duration) *InMemoryViewCache {
	return &InMemoryViewCache{
		entries: make(map[string]viewEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached arch
func (c *InMemoryViewCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false, nil
	}
	return e.arch, true, nil
}

// Set stores an arch
func (c *InMemoryViewCache) Set(ctx context.Context, key, arch string) error {
	e := viewEntry{arch: arch}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete evicts an arch
func (c *InMemoryViewCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryViewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ catalog.ViewCache = (*InMemoryViewCache)(nil)
