// Package backlog defines the Spec aggregate produced by the generation
// engine and the pure mutations collaborators apply to it afterwards.
package backlog

import (
	"time"

	"github.com/felixgeelhaar/specflow/internal/domain"
)

// FeatureNameLimit is the number of goal characters kept in a feature name.
const FeatureNameLimit = 60

// Item is a user story or an engineering task.
type Item struct {
	ID          string           `json:"id" yaml:"id"`
	Type        domain.ItemType  `json:"type" yaml:"type"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Priority    domain.Priority  `json:"priority" yaml:"priority"`
	Component   domain.Component `json:"component" yaml:"component"`
	Phase       domain.Phase     `json:"phase" yaml:"phase"`
}

// Risk is an assumption, unknown, or blocker note. Risks are not schedulable.
type Risk struct {
	ID   string          `json:"id" yaml:"id"`
	Type domain.RiskType `json:"type" yaml:"type"`
	Text string          `json:"text" yaml:"text"`
}

// Spec is the complete generation result for one input submission.
type Spec struct {
	ID          string          `json:"id" yaml:"id"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"created_at"`
	Template    domain.Template `json:"template" yaml:"template"`
	Goal        string          `json:"goal" yaml:"goal"`
	TargetUsers string          `json:"targetUsers" yaml:"target_users"`
	Constraints string          `json:"constraints" yaml:"constraints"`
	FeatureName string          `json:"featureName" yaml:"feature_name"`
	Stories     []Item          `json:"stories" yaml:"stories"`
	Tasks       []Item          `json:"tasks" yaml:"tasks"`
	Risks       []Risk          `json:"risks" yaml:"risks"`

	// Fingerprint is the content hash recorded at generation time.
	Fingerprint string `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// FeatureName derives the display label for a goal: the first 60
// characters plus "..." when the goal is longer, otherwise the goal itself.
func FeatureName(goal string) string {
	runes := []rune(goal)
	if len(runes) > FeatureNameLimit {
		return string(runes[:FeatureNameLimit]) + "..."
	}
	return goal
}

// Combined returns stories followed by tasks, the user-visible ordering.
func (s *Spec) Combined() []Item {
	items := make([]Item, 0, len(s.Stories)+len(s.Tasks))
	items = append(items, s.Stories...)
	items = append(items, s.Tasks...)
	return items
}

// Clone returns a deep copy so mutations never alias the receiver.
func (s *Spec) Clone() *Spec {
	c := *s
	c.Stories = append([]Item(nil), s.Stories...)
	c.Tasks = append([]Item(nil), s.Tasks...)
	c.Risks = append([]Risk(nil), s.Risks...)
	return &c
}

// Counts returns the number of stories, tasks, and risks.
func (s *Spec) Counts() (stories, tasks, risks int) {
	return len(s.Stories), len(s.Tasks), len(s.Risks)
}

// Modified reports whether the content changed since generation. Specs
// without a recorded fingerprint are never reported as modified.
func (s *Spec) Modified() bool {
	if s.Fingerprint == "" {
		return false
	}
	current, err := Fingerprint(s)
	if err != nil {
		return false
	}
	return current != s.Fingerprint
}
