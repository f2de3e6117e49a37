package persist

import (
	"context"
	"sync"
)

// MemorySnapshotter keeps snapshots in process memory. Used in tests and as
// a no-op fallback when no durable backend is configured.
type MemorySnapshotter struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemorySnapshotter() *MemorySnapshotter {
	return &MemorySnapshotter{blobs: make(map[string][]byte)}
}

func (m *MemorySnapshotter) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := append([]byte(nil), blob...)
	return out, true, nil
}

func (m *MemorySnapshotter) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}
