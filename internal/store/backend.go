// Package store persists the most recent generated specs.
//
// A Repository keeps a bounded, most-recent-first list of specs as one JSON
// document under a fixed namespace of a Backend. Backends are simple
// namespaced blob stores: a JSON file written atomically, a SQLite key-value
// table, or memory.
package store

import (
	"context"
	"fmt"
)

// Backend kinds accepted by OpenBackend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backend is a namespaced blob store.
type Backend interface {
	// Read returns the value stored under namespace, or nil when absent.
	Read(ctx context.Context, namespace string) ([]byte, error)
	// Write replaces the value stored under namespace.
	Write(ctx context.Context, namespace string, data []byte) error
	// Close releases backend resources.
	Close() error
	// Location describes where data lives, for logs and errors.
	Location() string
}

// OpenBackend opens a backend of the given kind at path.
func OpenBackend(ctx context.Context, kind, path string) (Backend, error) {
	switch kind {
	case BackendFile, "":
		return NewFileBackend(path)
	case BackendSQLite:
		return OpenSQLiteBackend(ctx, path)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
