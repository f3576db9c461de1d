package generator

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdentitySource supplies ids and timestamps to the engine.
type IdentitySource interface {
	NewID() string
	Now() time.Time
}

// SystemIdentity issues random UUIDs and wall-clock timestamps.
type SystemIdentity struct{}

// NewID returns a random UUID string.
func (SystemIdentity) NewID() string {
	return uuid.New().String()
}

// Now returns the current time in UTC.
func (SystemIdentity) Now() time.Time {
	return time.Now().UTC()
}

// SequentialIdentity issues predictable ids ("<prefix>-1", "<prefix>-2", ...)
// and a fixed clock. It is safe for concurrent use.
type SequentialIdentity struct {
	Prefix string
	Clock  time.Time

	mu   sync.Mutex
	next int
}

// NewSequentialIdentity creates a SequentialIdentity frozen at clock.
func NewSequentialIdentity(prefix string, clock time.Time) *SequentialIdentity {
	return &SequentialIdentity{Prefix: prefix, Clock: clock}
}

// NewID returns the next id in the sequence.
func (s *SequentialIdentity) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.next)
}

// Now returns the frozen clock.
func (s *SequentialIdentity) Now() time.Time {
	return s.Clock
}
