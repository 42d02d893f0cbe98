package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is an in-process KV used by tests and as a fallback when no
// database path is configured. Values round-trip through JSON so tests
// exercise the same serialization as the SQLite store.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte

	// FailPuts forces Put to fail, for persistence-failure tests.
	FailPuts bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string, dest any) error {
	m.mu.RLock()
	raw, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

func (m *Memory) Put(ctx context.Context, key string, value any) error {
	if m.FailPuts {
		return fmt.Errorf("put %q: store unavailable", key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	m.mu.Lock()
	m.docs[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.docs, key)
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored documents.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}
