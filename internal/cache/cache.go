// Package cache provides the best-effort key/value cache used for resolved
// field translations.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Store is a string cache with per-entry expiry. Implementations never fail:
// a broken backend simply behaves like a miss.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string, ttl time.Duration)
	Delete(key string)
}

// Stats counts lookups served by a Store.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
	Evicts int64
}

type entry struct {
	value    string
	expireAt time.Time // zero => no TTL
}

// Memory is an in-process Store. Expired entries are dropped lazily on
// read and by Sweep.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
	evicts atomic.Int64
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

// newMemoryWithClock is used by tests to control expiry.
func newMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	m.now = now
	return m
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if ok && !e.expireAt.IsZero() && !m.now().Before(e.expireAt) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.expireAt.Equal(e.expireAt) {
			delete(m.entries, key)
			m.evicts.Add(1)
		}
		m.mu.Unlock()
		ok = false
	}
	if !ok {
		m.misses.Add(1)
		return "", false
	}
	m.hits.Add(1)
	return e.value, true
}

func (m *Memory) Set(key, value string, ttl time.Duration) {
	e := entry{value: value}
	if ttl > 0 {
		e.expireAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	m.sets.Add(1)
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	if _, ok := m.entries[key]; ok {
		delete(m.entries, key)
		m.evicts.Add(1)
	}
	m.mu.Unlock()
}

// Sweep removes every expired entry and returns how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()
	removed := 0
	m.mu.Lock()
	for k, e := range m.entries {
		if !e.expireAt.IsZero() && !now.Before(e.expireAt) {
			delete(m.entries, k)
			removed++
		}
	}
	m.mu.Unlock()
	m.evicts.Add(int64(removed))
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Stats() Stats {
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
		Evicts: m.evicts.Load(),
	}
}
