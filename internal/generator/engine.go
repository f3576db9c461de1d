// Package generator turns a goal, its target users, optional constraints, and
// a template into a backlog of stories, tasks, and risks.
//
// Generation is rule based and deterministic: the same input always yields
// the same titles, order, priorities, components, and phases. Only ids and
// the creation timestamp vary, and both come from an injected IdentitySource.
package generator

import (
	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
)

// Input is one generation request. Goal and TargetUsers are required by
// callers; the engine itself accepts any strings.
type Input struct {
	Goal        string          `json:"goal" yaml:"goal"`
	TargetUsers string          `json:"targetUsers" yaml:"target_users"`
	Constraints string          `json:"constraints" yaml:"constraints"`
	Template    domain.Template `json:"template" yaml:"template"`
}

// Engine assembles specs from the story, task, and risk rules.
type Engine struct {
	identity IdentitySource
}

// NewEngine creates an engine. A nil identity falls back to SystemIdentity.
func NewEngine(identity IdentitySource) *Engine {
	if identity == nil {
		identity = SystemIdentity{}
	}
	return &Engine{identity: identity}
}

// Generate builds a fresh Spec for in. It never fails and never mutates
// shared state.
func (e *Engine) Generate(in Input) *backlog.Spec {
	titles := storyTitles(in)
	stories := make([]backlog.Item, len(titles))
	for i, title := range titles {
		stories[i] = backlog.Item{
			ID:        e.identity.NewID(),
			Type:      domain.ItemTypeStory,
			Title:     title,
			Priority:  domain.PriorityAt(i, len(titles)),
			Component: domain.ComponentDesign,
			Phase:     domain.PhasePlanning,
		}
	}

	specs := taskSpecs(in)
	tasks := make([]backlog.Item, len(specs))
	for i, t := range specs {
		tasks[i] = backlog.Item{
			ID:        e.identity.NewID(),
			Type:      domain.ItemTypeTask,
			Title:     t.Title,
			Priority:  domain.PriorityAt(i, len(specs)),
			Component: t.Component,
			Phase:     domain.PhaseFor(t.Component),
		}
	}

	notes := riskSpecs(in)
	risks := make([]backlog.Risk, len(notes))
	for i, r := range notes {
		risks[i] = backlog.Risk{
			ID:   e.identity.NewID(),
			Type: r.Type,
			Text: r.Text,
		}
	}

	spec := &backlog.Spec{
		ID:          e.identity.NewID(),
		CreatedAt:   e.identity.Now(),
		Template:    in.Template,
		Goal:        in.Goal,
		TargetUsers: in.TargetUsers,
		Constraints: in.Constraints,
		FeatureName: backlog.FeatureName(in.Goal),
		Stories:     stories,
		Tasks:       tasks,
		Risks:       risks,
	}

	// Fingerprint only fails on unmarshalable content; a freshly built spec
	// holds plain strings.
	if fp, err := backlog.Fingerprint(spec); err == nil {
		spec.Fingerprint = fp
	}

	return spec
}
