package storage

import "sync"

// Memory is the session-scoped persistence tier: a mutex-guarded map that
// lives for the lifetime of the process. It holds the session-scoped
// session token and the current navigation record.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	maxBytes int64
	size     int64
}

// NewMemory creates a session-scoped tier. maxBytes of 0 means unbounded.
func NewMemory(maxBytes int64) *Memory {
	return &Memory{data: make(map[string][]byte), maxBytes: maxBytes}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev := int64(0)
	if old, ok := m.data[key]; ok {
		prev = int64(len(key) + len(old))
	}
	next := int64(len(key) + len(value))
	if m.maxBytes > 0 && m.size-prev+next > m.maxBytes {
		return ErrQuotaExceeded
	}
	m.data[key] = append([]byte(nil), value...)
	m.size += next - prev
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.size -= int64(len(key) + len(old))
		delete(m.data, key)
	}
	return nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	m.size = 0
	return nil
}
