package cache

import (
	"context"
	"sync"
	"time"

	"github.com/marstr/collection/v2"

	"portfoliotracker/internal/provider"
)

type entry struct {
	expiresAt time.Time
	quote     provider.Quote
}

// Memory is an in-process Store that evicts the least recently used quote
// once capacity is reached.
type Memory struct {
	mu  sync.Mutex
	lru *collection.LRUCache[string, entry]
}

var _ Store = (*Memory)(nil)

func NewMemory(capacity uint) *Memory {
	if capacity == 0 {
		capacity = 10000
	}
	return &Memory{lru: collection.NewLRUCache[string, entry](capacity)}
}

func (m *Memory) Get(_ context.Context, key string) (provider.Quote, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lru.Get(key)
	if !ok || !time.Now().Before(e.expiresAt) {
		return provider.Quote{}, false
	}
	return e.quote, true
}

func (m *Memory) Set(_ context.Context, key string, q provider.Quote, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Put(key, entry{expiresAt: time.Now().Add(ttl), quote: q})
}
