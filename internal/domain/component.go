package domain

import "fmt"

// Component is the functional area a backlog item belongs to.
type Component string

// Valid components, in classification order.
const (
	ComponentFrontend Component = "frontend"
	ComponentBackend  Component = "backend"
	ComponentDesign   Component = "design"
	ComponentTesting  Component = "testing"
	ComponentDevOps   Component = "devops"
)

// Components lists every component in taxonomy order.
var Components = []Component{
	ComponentFrontend,
	ComponentBackend,
	ComponentDesign,
	ComponentTesting,
	ComponentDevOps,
}

// NewComponent creates a Component with validation
func NewComponent(value string) (Component, error) {
	c := Component(value)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks if the component is valid
func (c Component) Validate() error {
	for _, known := range Components {
		if c == known {
			return nil
		}
	}
	return fmt.Errorf("invalid component %q: must be frontend, backend, design, testing, or devops", string(c))
}

// String returns the string representation
func (c Component) String() string {
	return string(c)
}

// Phase is the delivery stage an item is scheduled into.
type Phase string

// Valid phases, in delivery order.
const (
	PhasePlanning    Phase = "planning"
	PhaseDevelopment Phase = "development"
	PhaseTesting     Phase = "testing"
	PhaseDeployment  Phase = "deployment"
)

// Phases lists every phase in delivery order.
var Phases = []Phase{PhasePlanning, PhaseDevelopment, PhaseTesting, PhaseDeployment}

// NewPhase creates a Phase with validation
func NewPhase(value string) (Phase, error) {
	p := Phase(value)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate checks if the phase is valid
func (p Phase) Validate() error {
	for _, known := range Phases {
		if p == known {
			return nil
		}
	}
	return fmt.Errorf("invalid phase %q: must be planning, development, testing, or deployment", string(p))
}

// String returns the string representation
func (p Phase) String() string {
	return string(p)
}

// PhaseFor derives the phase of a task from its component.
func PhaseFor(c Component) Phase {
	switch c {
	case ComponentTesting:
		return PhaseTesting
	case ComponentDevOps:
		return PhaseDeployment
	case ComponentDesign:
		return PhasePlanning
	default:
		return PhaseDevelopment
	}
}
