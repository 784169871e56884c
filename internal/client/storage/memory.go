package storage

import (
	"context"
	"sync"
)

// Memory is a process-local Store, used for ephemeral sessions and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.data, k)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Update(_ context.Context, c Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range c.Set {
		m.data[k] = v
	}
	for _, k := range c.Delete {
		delete(m.data, k)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
