package health

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/config"
	"github.com/felixgeelhaar/specflow/internal/store"
)

// ConfigChecker validates the loaded configuration.
type ConfigChecker struct {
	cfg *config.Config
}

// NewConfigChecker creates a checker for cfg.
func NewConfigChecker(cfg *config.Config) *ConfigChecker {
	return &ConfigChecker{cfg: cfg}
}

// Name returns "config".
func (c *ConfigChecker) Name() string { return "config" }

// Check reports whether every configured value is valid.
func (c *ConfigChecker) Check(_ context.Context) *Result {
	if c.cfg == nil {
		return Unhealthy("no configuration loaded")
	}

	source := c.cfg.File
	if source == "" {
		source = "built-in defaults"
	}
	if err := c.cfg.Validate(); err != nil {
		return Unhealthy(err.Error()).WithDetail("source", source)
	}
	return Healthy("configuration is valid").
		WithDetail("source", source).
		WithDetail("backend", c.cfg.Storage.Backend)
}

// StoreChecker reads and decodes the spec history.
type StoreChecker struct {
	backend store.Backend
}

// NewStoreChecker creates a checker for backend.
func NewStoreChecker(backend store.Backend) *StoreChecker {
	return &StoreChecker{backend: backend}
}

// Name returns "spec-store".
func (c *StoreChecker) Name() string { return "spec-store" }

// Check reports unreadable or undecodable history as degraded, since
// commands then start from an empty history.
func (c *StoreChecker) Check(ctx context.Context) *Result {
	data, err := c.backend.Read(ctx, store.Namespace)
	if err != nil {
		return Degraded("history is unreadable; commands start from an empty list").
			WithDetail("location", c.backend.Location()).
			WithDetail("error", err.Error())
	}
	if len(data) == 0 {
		return Healthy("no saved specs yet").WithDetail("location", c.backend.Location())
	}

	var specs []*backlog.Spec
	if err := json.Unmarshal(data, &specs); err != nil {
		return Degraded("history is corrupt and will be replaced on the next save").
			WithDetail("location", c.backend.Location()).
			WithDetail("error", err.Error())
	}

	modified := 0
	for _, s := range specs {
		if s != nil && s.Modified() {
			modified++
		}
	}
	return Healthy(fmt.Sprintf("%d saved specs", len(specs))).
		WithDetail("location", c.backend.Location()).
		WithDetail("specs", len(specs)).
		WithDetail("edited", modified)
}
