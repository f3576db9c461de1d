package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/log"
)

const (
	// Namespace is the fixed key all specs are stored under.
	Namespace = "specflow_specs"

	// MaxRecent is the number of specs kept; older ones are evicted.
	MaxRecent = 5
)

// Repository is the bounded most-recent-first spec history.
type Repository struct {
	backend  Backend
	identity generator.IdentitySource
	logger   *log.Logger

	mu sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for degraded reads.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithIdentity sets the id and clock source used when saving specs that
// lack an id or creation time.
func WithIdentity(identity generator.IdentitySource) Option {
	return func(r *Repository) {
		if identity != nil {
			r.identity = identity
		}
	}
}

// New creates a repository over backend.
func New(backend Backend, opts ...Option) *Repository {
	r := &Repository{
		backend:  backend,
		identity: generator.SystemIdentity{},
		logger:   log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "store", "location", backend.Location())
	return r
}

// Close closes the backend.
func (r *Repository) Close() error {
	return r.backend.Close()
}

// List returns the stored specs, most recent first. Missing or unreadable
// data yields an empty list.
func (r *Repository) List(ctx context.Context) ([]*backlog.Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx), nil
}

// Get returns the spec with id, or nil when it is not stored.
func (r *Repository) Get(ctx context.Context, id string) (*backlog.Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.load(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// Save prepends spec, assigning an id and creation time when absent, and
// evicts anything beyond MaxRecent. The stored copy is independent of spec.
func (r *Repository) Save(ctx context.Context, spec *backlog.Spec) ([]*backlog.Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := spec.Clone()
	if entry.ID == "" {
		entry.ID = r.identity.NewID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.identity.Now()
	}

	specs := append([]*backlog.Spec{entry}, r.load(ctx)...)
	if len(specs) > MaxRecent {
		for _, evicted := range specs[MaxRecent:] {
			r.logger.Debug("evicting spec", "spec_id", evicted.ID)
		}
		specs = specs[:MaxRecent]
	}

	if err := r.persist(ctx, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Update merges patch into the spec with id. An unknown id leaves storage
// untouched.
func (r *Repository) Update(ctx context.Context, id string, patch backlog.Patch) ([]*backlog.Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	specs := r.load(ctx)
	for i, s := range specs {
		if s.ID != id {
			continue
		}
		specs[i] = patch.Apply(s)
		if err := r.persist(ctx, specs); err != nil {
			return nil, err
		}
		return specs, nil
	}
	return specs, nil
}

// Delete removes the spec with id.
func (r *Repository) Delete(ctx context.Context, id string) ([]*backlog.Spec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loaded := r.load(ctx)
	specs := make([]*backlog.Spec, 0, len(loaded))
	for _, s := range loaded {
		if s.ID != id {
			specs = append(specs, s)
		}
	}

	if err := r.persist(ctx, specs); err != nil {
		return nil, err
	}
	return specs, nil
}

func (r *Repository) load(ctx context.Context) []*backlog.Spec {
	data, err := r.backend.Read(ctx, Namespace)
	if err != nil {
		r.logger.WarnContext(ctx, "spec history unreadable, starting empty", "error", err)
		return []*backlog.Spec{}
	}
	if len(data) == 0 {
		return []*backlog.Spec{}
	}

	var decoded []*backlog.Spec
	if err := json.Unmarshal(data, &decoded); err != nil {
		r.logger.WarnContext(ctx, "spec history corrupt, starting empty", "error", err)
		return []*backlog.Spec{}
	}

	specs := make([]*backlog.Spec, 0, len(decoded))
	for _, s := range decoded {
		if s != nil {
			specs = append(specs, s)
		}
	}
	if len(specs) > MaxRecent {
		specs = specs[:MaxRecent]
	}
	return specs
}

func (r *Repository) persist(ctx context.Context, specs []*backlog.Spec) error {
	data, err := json.Marshal(specs)
	if err != nil {
		return sferrors.NewStoreWriteError(r.backend.Location(), err)
	}
	if err := r.backend.Write(ctx, Namespace, data); err != nil {
		return sferrors.NewStoreWriteError(r.backend.Location(), err)
	}
	return nil
}
