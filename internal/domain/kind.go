package domain

import "fmt"

// ItemType distinguishes user stories from engineering tasks.
type ItemType string

const (
	ItemTypeStory ItemType = "story"
	ItemTypeTask  ItemType = "task"
)

// Validate checks if the item type is valid
func (t ItemType) Validate() error {
	switch t {
	case ItemTypeStory, ItemTypeTask:
		return nil
	default:
		return fmt.Errorf("invalid item type %q: must be story or task", string(t))
	}
}

// String returns the string representation
func (t ItemType) String() string {
	return string(t)
}

// RiskType classifies a risk note. Values are capitalised as they are displayed.
type RiskType string

const (
	RiskAssumption RiskType = "Assumption"
	RiskUnknown    RiskType = "Unknown"
	RiskBlocker    RiskType = "Blocker"
)

// Validate checks if the risk type is valid
func (t RiskType) Validate() error {
	switch t {
	case RiskAssumption, RiskUnknown, RiskBlocker:
		return nil
	default:
		return fmt.Errorf("invalid risk type %q: must be Assumption, Unknown, or Blocker", string(t))
	}
}

// String returns the string representation
func (t RiskType) String() string {
	return string(t)
}

// Template is a project archetype that injects extra tasks and risks.
type Template string

const (
	TemplateWeb      Template = "web"
	TemplateMobile   Template = "mobile"
	TemplateInternal Template = "internal"
	TemplateCustom   Template = "custom"
)

// Templates lists the recognised templates in display order.
var Templates = []Template{TemplateWeb, TemplateMobile, TemplateInternal, TemplateCustom}

// NewTemplate creates a Template with validation. Callers that want the
// lenient behaviour (unknown means "no extras") use Template(value) directly.
func NewTemplate(value string) (Template, error) {
	t := Template(value)
	if !t.IsKnown() {
		return "", fmt.Errorf("invalid template %q: must be web, mobile, internal, or custom", value)
	}
	return t, nil
}

// IsKnown reports whether t is one of the recognised templates.
func (t Template) IsKnown() bool {
	for _, known := range Templates {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (t Template) String() string {
	return string(t)
}

// GroupBy is the dimension backlog items are grouped by for display and export.
type GroupBy string

const (
	GroupByType      GroupBy = "type"
	GroupByPriority  GroupBy = "priority"
	GroupByComponent GroupBy = "component"
	GroupByPhase     GroupBy = "phase"
)

// GroupDimensions lists the grouping dimensions in display order.
var GroupDimensions = []GroupBy{GroupByType, GroupByPriority, GroupByComponent, GroupByPhase}

// NewGroupBy creates a GroupBy with validation
func NewGroupBy(value string) (GroupBy, error) {
	g := GroupBy(value)
	for _, known := range GroupDimensions {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("invalid group-by %q: must be type, priority, component, or phase", value)
}

// Next cycles through the grouping dimensions.
func (g GroupBy) Next() GroupBy {
	for i, known := range GroupDimensions {
		if g == known {
			return GroupDimensions[(i+1)%len(GroupDimensions)]
		}
	}
	return GroupByType
}

// String returns the string representation
func (g GroupBy) String() string {
	return string(g)
}
