package store

import (
	"context"
	"sync"
)

// MemoryBackend is a process-local backend used for --no-save runs and tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates an empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Read returns a copy of the stored value.
func (b *MemoryBackend) Read(ctx context.Context, namespace string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.data[namespace]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Write stores a copy of data.
func (b *MemoryBackend) Write(ctx context.Context, namespace string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[namespace] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op.
func (b *MemoryBackend) Close() error { return nil }

// Location identifies the backend.
func (b *MemoryBackend) Location() string { return "memory" }
