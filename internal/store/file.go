package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileBackend keeps every namespace in one JSON object on disk. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend creates a file backend at path, creating its directory.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		return nil, errors.New("file backend requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileBackend{path: path}, nil
}

// Read returns the raw value for namespace.
func (b *FileBackend) Read(ctx context.Context, namespace string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load()
	if err != nil {
		return nil, err
	}
	return doc[namespace], nil
}

// Write stores data under namespace, keeping other namespaces intact. A
// document that no longer parses is replaced.
func (b *FileBackend) Write(ctx context.Context, namespace string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(data) {
		return fmt.Errorf("namespace %s: value is not valid JSON", namespace)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.load()
	if err != nil {
		doc = map[string]json.RawMessage{}
	}
	doc[namespace] = json.RawMessage(data)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage document: %w", err)
	}
	return atomic.WriteFile(b.path, bytes.NewReader(out))
}

// Close is a no-op for files.
func (b *FileBackend) Close() error { return nil }

// Location returns the file path.
func (b *FileBackend) Location() string { return b.path }

func (b *FileBackend) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", b.path, err)
	}
	return doc, nil
}
