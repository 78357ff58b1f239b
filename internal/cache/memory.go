package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is a size bounded in-process LRU cache with per entry expiry.
type Memory struct {
	lru *lru.Cache
	now func() time.Time
}

// NewMemory returns a Memory cache holding at most size entries.
func NewMemory(size int) (*Memory, error) {
	l, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	return &Memory{lru: l, now: time.Now}, nil
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}

	e, _ := v.(memoryEntry)
	if !e.expires.IsZero() && m.now().After(e.expires) {
		m.lru.Remove(key)

		return nil, false, nil
	}

	return e.value, true, nil
}

// Set implements Cache. A ttl of zero keeps the entry until it is evicted.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}

	m.lru.Add(key, e)

	return nil
}

// Delete implements Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.lru.Remove(key)

	return nil
}
