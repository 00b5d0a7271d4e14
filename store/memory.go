package store

import (
	"sync"
)

type MemoryStore struct {
	sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: map[string]string{},
	}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.RLock()
	defer m.RUnlock()

	v, ok := m.values[key]

	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.Lock()
	defer m.Unlock()

	m.values[key] = value

	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
