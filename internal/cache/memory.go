package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache with per-entry expiry. Entries live only
// as long as the process, so it serves library callers and long-running hosts;
// a one-shot CLI run never sees a hit.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	config  Config
	now     func() time.Time
	cancel  context.CancelFunc
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache creates a memory cache and starts its expiry sweeper
func NewMemoryCache(config Config) *MemoryCache {
	ctx, cancel := context.WithCancel(context.Background())
	m := &MemoryCache{
		entries: make(map[string]entry),
		config:  config,
		now:     time.Now,
		cancel:  cancel,
	}

	go m.sweep(ctx, time.Minute)

	return m
}

// Get retrieves a value from the cache
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	e, ok := m.entries[m.config.Prefix+key]
	m.mu.RUnlock()

	if !ok || e.expired(m.now()) {
		return nil, missError(key)
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a copy of value
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl == 0 {
		ttl = m.config.DefaultTTL
	}

	e := entry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[m.config.Prefix+key] = e
	m.mu.Unlock()
	return nil
}

// Delete removes a value from the cache
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.entries, m.config.Prefix+key)
	m.mu.Unlock()
	return nil
}

// Clear removes all values from the cache
func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

// Exists checks if an unexpired value is stored under key
func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	e, ok := m.entries[m.config.Prefix+key]
	m.mu.RUnlock()

	return ok && !e.expired(m.now()), nil
}

// Len returns the number of stored entries, including expired ones not yet swept
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the expiry sweeper
func (m *MemoryCache) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *MemoryCache) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

func (m *MemoryCache) removeExpired() {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
}
