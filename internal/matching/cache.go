// internal/matching/cache.go
package matching

import (
	"context"
	"fmt"
	"sync"
	"time"

	"venture-match/internal/common/logger"
	"venture-match/internal/common/metrics"
	"venture-match/internal/models"
)

// Store keeps cached search results until they expire.
type Store interface {
	Get(ctx context.Context, key string, now time.Time) ([]models.MatchResult, bool, error)
	Set(ctx context.Context, key string, results []models.MatchResult, now time.Time, ttl time.Duration) error
	// Sweep removes entries expired at now and reports how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
	Clear(ctx context.Context) error
}

func cacheKey(actorID string, role models.Role, limit int) string {
	return fmt.Sprintf("%s:%s:%d", role, actorID, limit)
}

type memoryEntry struct {
	results   []models.MatchResult
	expiresAt time.Time
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string, now time.Time) ([]models.MatchResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	if !ok || !now.Before(entry.expiresAt) {
		return nil, false, nil
	}
	return cloneResults(entry.results), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, results []models.MatchResult, now time.Time, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		results:   cloneResults(results),
		expiresAt: now.Add(ttl),
	}
	return nil
}

// cloneResults deep-copies results. The result is never nil.
func cloneResults(results []models.MatchResult) []models.MatchResult {
	out := make([]models.MatchResult, len(results))
	for i := range results {
		out[i] = results[i].Clone()
	}
	return out
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]memoryEntry)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Cache memoizes search results for a fixed TTL and runs a periodic sweep of
// expired entries.
type Cache struct {
	store    Store
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCache(store Store, ttl, sweepInterval time.Duration, now func() time.Time, log logger.Logger) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		store:    store,
		ttl:      ttl,
		interval: sweepInterval,
		now:      now,
		logger:   log,
	}
}

// GetOrCompute returns cached results for key, or runs compute and caches its
// output. Store failures are logged and fall back to compute.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func() []models.MatchResult) ([]models.MatchResult, bool) {
	results, ok, err := c.store.Get(ctx, key, c.now())
	if err != nil {
		c.logger.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	if ok {
		metrics.CacheHits.Inc()
		return results, true
	}
	metrics.CacheMisses.Inc()

	results = compute()
	if err := c.store.Set(ctx, key, results, c.now(), c.ttl); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return results, false
}

// Sweep removes expired entries.
func (c *Cache) Sweep(ctx context.Context) int {
	removed, err := c.store.Sweep(ctx, c.now())
	if err != nil {
		c.logger.Warn("cache sweep failed", map[string]interface{}{"error": err.Error()})
		return 0
	}
	metrics.CacheEvictions.Add(float64(removed))
	if removed > 0 {
		c.logger.Debug("cache sweep completed", map[string]interface{}{"removed": removed})
	}
	return removed
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// Start launches the sweep loop. It is a no-op if the loop is already running.
func (c *Cache) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil || c.interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.sweepLoop(ctx, c.done)
}

// Stop cancels the sweep loop and waits for it to exit.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *Cache) sweepLoop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep(ctx)
		}
	}
}
