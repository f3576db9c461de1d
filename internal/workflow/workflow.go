// Package workflow orchestrates spec generation and editing on top of the
// engine and a spec repository.
package workflow

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/log"
	"github.com/felixgeelhaar/specflow/internal/telemetry"
)

// DefaultDelay is the pause before generation, matching the interactive feel
// of the web form.
const DefaultDelay = 800 * time.Millisecond

// Repository stores the bounded spec history.
type Repository interface {
	List(ctx context.Context) ([]*backlog.Spec, error)
	Get(ctx context.Context, id string) (*backlog.Spec, error)
	Save(ctx context.Context, spec *backlog.Spec) ([]*backlog.Spec, error)
	Update(ctx context.Context, id string, patch backlog.Patch) ([]*backlog.Spec, error)
	Delete(ctx context.Context, id string) ([]*backlog.Spec, error)
}

// Service runs generation and edits against a repository.
type Service struct {
	Engine     *generator.Engine
	Repository Repository
	Logger     *log.Logger
	// Delay is waited before each generation; zero disables it.
	Delay time.Duration
}

// GenerateOptions controls a single Generate call.
type GenerateOptions struct {
	// NoSave skips persisting the generated spec.
	NoSave bool
}

// GenerateResult contains the outcome of a Generate call.
type GenerateResult struct {
	Spec *backlog.Spec
	// Saved reports whether the spec was written to the repository.
	Saved bool
	// History is the repository content after saving, most recent first.
	History  []*backlog.Spec
	Duration time.Duration
}

// ValidateInput rejects a goal or target users that are blank after
// trimming. The text fields are returned as given; an empty template is left
// for the caller's default.
func ValidateInput(in generator.Input) (generator.Input, error) {
	if strings.TrimSpace(in.Goal) == "" {
		return in, sferrors.NewGoalRequiredError()
	}
	if strings.TrimSpace(in.TargetUsers) == "" {
		return in, sferrors.NewUsersRequiredError()
	}
	if in.Template != "" {
		t, err := domain.NewTemplate(string(in.Template))
		if err != nil {
			return in, sferrors.NewInvalidValueError("template", string(in.Template), templateNames())
		}
		in.Template = t
	}
	return in, nil
}

// Generate validates in, waits the configured delay, builds a spec, and
// saves it unless opts.NoSave is set.
func (s *Service) Generate(ctx context.Context, in generator.Input, opts GenerateOptions) (*GenerateResult, error) {
	ctx, span := telemetry.StartOperationSpan(ctx, "generate")
	defer span.End()
	start := time.Now()

	in, err := ValidateInput(in)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if in.Template == "" {
		in.Template = domain.TemplateWeb
	}

	if err := s.wait(ctx); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	spec := s.engine().Generate(in)
	stories, tasks, risks := spec.Counts()
	telemetry.RecordCounts(span, stories, tasks, risks)
	telemetry.RecordGeneration(ctx, string(spec.Template), stories, tasks, risks)

	result := &GenerateResult{Spec: spec}
	if !opts.NoSave {
		history, err := s.Repository.Save(ctx, spec)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		result.Saved = true
		result.History = history
	}
	result.Duration = time.Since(start)

	s.logger().InfoContext(ctx, "generated spec",
		"spec_id", spec.ID,
		"template", string(spec.Template),
		"stories", stories,
		"tasks", tasks,
		"risks", risks,
		"saved", result.Saved,
	)
	telemetry.RecordSuccess(span, attribute.String("template", string(spec.Template)))
	return result, nil
}

// wait blocks for the configured delay or until ctx is done.
func (s *Service) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// List returns the stored specs, most recent first.
func (s *Service) List(ctx context.Context) ([]*backlog.Spec, error) {
	return s.Repository.List(ctx)
}

// Get resolves ref, a full spec id or a unique prefix of one.
func (s *Service) Get(ctx context.Context, ref string) (*backlog.Spec, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, sferrors.NewSpecNotFoundError(ref)
	}

	if spec, err := s.Repository.Get(ctx, ref); err != nil || spec != nil {
		return spec, err
	}

	specs, err := s.Repository.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(specs))
	for i, spec := range specs {
		ids[i] = spec.ID
	}
	id, err := resolve(ref, ids, "spec")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, sferrors.NewSpecNotFoundError(ref)
	}
	for _, spec := range specs {
		if spec.ID == id {
			return spec, nil
		}
	}
	return nil, sferrors.NewSpecNotFoundError(ref)
}

// Delete removes the spec ref resolves to and returns its id.
func (s *Service) Delete(ctx context.Context, ref string) (string, error) {
	spec, err := s.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	if _, err := s.Repository.Delete(ctx, spec.ID); err != nil {
		return "", err
	}
	s.logger().InfoContext(ctx, "deleted spec", "spec_id", spec.ID)
	return spec.ID, nil
}

// UpdateItem applies patch to one story or task.
func (s *Service) UpdateItem(ctx context.Context, specRef, itemRef string, patch backlog.ItemPatch) (*backlog.Spec, error) {
	return s.edit(ctx, "update_item", specRef, func(spec *backlog.Spec) (*backlog.Spec, error) {
		id, err := itemID(spec, itemRef)
		if err != nil {
			return nil, err
		}
		updated, _ := spec.WithItemUpdated(id, patch)
		return updated, nil
	})
}

// DeleteItem removes one story or task.
func (s *Service) DeleteItem(ctx context.Context, specRef, itemRef string) (*backlog.Spec, error) {
	return s.edit(ctx, "delete_item", specRef, func(spec *backlog.Spec) (*backlog.Spec, error) {
		id, err := itemID(spec, itemRef)
		if err != nil {
			return nil, err
		}
		updated, _ := spec.WithItemDeleted(id)
		return updated, nil
	})
}

// MoveItem moves the source item to the target's position in the combined
// order. Moving an item onto itself leaves the spec unchanged.
func (s *Service) MoveItem(ctx context.Context, specRef, sourceRef, targetRef string) (*backlog.Spec, error) {
	return s.edit(ctx, "move_item", specRef, func(spec *backlog.Spec) (*backlog.Spec, error) {
		source, err := itemID(spec, sourceRef)
		if err != nil {
			return nil, err
		}
		target, err := itemID(spec, targetRef)
		if err != nil {
			return nil, err
		}
		updated, _ := spec.WithItemMoved(source, target)
		return updated, nil
	})
}

// UpdateRisk replaces the text of one risk.
func (s *Service) UpdateRisk(ctx context.Context, specRef, riskRef, text string) (*backlog.Spec, error) {
	return s.edit(ctx, "update_risk", specRef, func(spec *backlog.Spec) (*backlog.Spec, error) {
		ids := make([]string, len(spec.Risks))
		for i, r := range spec.Risks {
			ids[i] = r.ID
		}
		id, err := resolve(riskRef, ids, "risk")
		if err != nil {
			return nil, err
		}
		if id == "" {
			return nil, sferrors.NewRiskNotFoundError(spec.ID, riskRef)
		}
		updated, _ := spec.WithRiskText(id, text)
		return updated, nil
	})
}

// Replace stores edited content for the spec with edited.ID, as produced by
// an interactive review session.
func (s *Service) Replace(ctx context.Context, edited *backlog.Spec) (*backlog.Spec, error) {
	return s.edit(ctx, "replace", edited.ID, func(*backlog.Spec) (*backlog.Spec, error) {
		return edited, nil
	})
}

// edit loads the spec ref resolves to, applies fn, and persists the content
// when it changed.
func (s *Service) edit(ctx context.Context, op, ref string, fn func(*backlog.Spec) (*backlog.Spec, error)) (*backlog.Spec, error) {
	ctx, span := telemetry.StartOperationSpan(ctx, op)
	defer span.End()

	spec, err := s.Get(ctx, ref)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	updated, err := fn(spec)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if updated == spec {
		telemetry.RecordEdit(ctx, op, false)
		telemetry.RecordSuccess(span, attribute.Bool("changed", false))
		return spec, nil
	}

	if _, err := s.Repository.Update(ctx, spec.ID, backlog.ContentPatch(updated)); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.logger().DebugContext(ctx, "spec edited", "spec_id", spec.ID, "operation", op)
	telemetry.RecordEdit(ctx, op, true)
	telemetry.RecordSuccess(span, attribute.Bool("changed", true))
	return updated, nil
}

func (s *Service) engine() *generator.Engine {
	if s.Engine == nil {
		s.Engine = generator.NewEngine(nil)
	}
	return s.Engine
}

func (s *Service) logger() *log.Logger {
	if s.Logger == nil {
		return log.DefaultLogger()
	}
	return s.Logger
}

func itemID(spec *backlog.Spec, ref string) (string, error) {
	combined := spec.Combined()
	ids := make([]string, len(combined))
	for i, item := range combined {
		ids[i] = item.ID
	}
	id, err := resolve(ref, ids, "item")
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", sferrors.NewItemNotFoundError(spec.ID, ref)
	}
	return id, nil
}

// resolve matches ref against ids exactly, then as a unique prefix. It
// returns "" when nothing matches and an INPUT-003 error when the prefix is
// ambiguous.
func resolve(ref string, ids []string, kind string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return matches[0], nil
	default:
		sort.Strings(matches)
		return "", sferrors.NewInvalidValueError(kind+" id", ref, matches).
			WithSuggestion("Use a longer prefix to pick one " + kind)
	}
}

func templateNames() []string {
	names := make([]string, len(domain.Templates))
	for i, t := range domain.Templates {
		names[i] = string(t)
	}
	return names
}
