package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const minPruneInterval = time.Minute

// Memory is a bounded in-process Guard. Entries older than the retention
// period are pruned lazily, at most once per prune interval, and the oldest
// entry is evicted when the cache is full.
type Memory struct {
	mu            sync.Mutex
	last          map[string]time.Time
	retention     time.Duration
	maxEntries    int
	pruneInterval time.Duration
	lastPrune     time.Time
	now           func() time.Time
}

// NewMemory creates a guard keeping each key for retention and at most
// maxEntries keys (0 means unbounded).
func NewMemory(retention time.Duration, maxEntries int) *Memory {
	interval := retention / 10
	if interval < minPruneInterval {
		interval = minPruneInterval
	}
	return &Memory{
		last:          make(map[string]time.Time),
		retention:     retention,
		maxEntries:    maxEntries,
		pruneInterval: interval,
		now:           time.Now,
	}
}

// Seen implements Guard. A duplicate does not move the stored timestamp, so
// a held-down button gets through once per window.
func (m *Memory) Seen(_ context.Context, key string, window time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.maybePrune(now)

	if t, ok := m.last[key]; ok && window > 0 && now.Sub(t) < window {
		return true, nil
	}

	if _, ok := m.last[key]; !ok && m.maxEntries > 0 && len(m.last) >= m.maxEntries {
		m.evictOldest()
	}
	m.last[key] = now
	return false, nil
}

// Len returns the number of tracked keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.last)
}

func (m *Memory) maybePrune(now time.Time) {
	if now.Sub(m.lastPrune) < m.pruneInterval {
		return
	}
	m.lastPrune = now

	removed := 0
	for k, t := range m.last {
		if now.Sub(t) > m.retention {
			delete(m.last, k)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(m.last)).Msg("Pruned click history")
	}
}

func (m *Memory) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, t := range m.last {
		if oldestKey == "" || t.Before(oldest) {
			oldestKey, oldest = k, t
		}
	}
	delete(m.last, oldestKey)
}
