package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/generator"
)

// ErrCancelled is returned when the user leaves a screen without finishing.
var ErrCancelled = fmt.Errorf("cancelled by user: %w", context.Canceled)

var templateLabels = map[domain.Template]string{
	domain.TemplateWeb:      "Web application",
	domain.TemplateMobile:   "Mobile app",
	domain.TemplateInternal: "Internal tool",
	domain.TemplateCustom:   "Custom (no template extras)",
}

// IntakeModel is the form that collects a generation request.
type IntakeModel struct {
	form      *huh.Form
	values    *intakeValues
	styles    Styles
	quitting  bool
	completed bool
	width     int
}

type intakeValues struct {
	goal        string
	users       string
	constraints string
	template    string
}

// NewIntakeModel creates the intake form prefilled from defaults.
func NewIntakeModel(defaults generator.Input) *IntakeModel {
	v := &intakeValues{
		goal:        defaults.Goal,
		users:       defaults.TargetUsers,
		constraints: defaults.Constraints,
		template:    string(defaults.Template),
	}
	if !domain.Template(v.template).IsKnown() {
		v.template = string(domain.TemplateWeb)
	}

	options := make([]huh.Option[string], 0, len(domain.Templates))
	for _, t := range domain.Templates {
		options = append(options, huh.NewOption(templateLabels[t], string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Key("goal").
				Title("What do you want to build?").
				Description("One or two sentences describing the feature goal").
				Placeholder("Build a dashboard that helps managers track team OKRs").
				Value(&v.goal).
				Validate(required("goal")),
			huh.NewInput().
				Key("users").
				Title("Who is it for?").
				Description("e.g. managers, admins, end users").
				Value(&v.users).
				Validate(required("target users")),
			huh.NewText().
				Key("constraints").
				Title("Constraints").
				Description("Optional: compliance, performance, integrations").
				Value(&v.constraints),
			huh.NewSelect[string]().
				Key("template").
				Title("Template").
				Options(options...).
				Value(&v.template),
		).Title("New spec").
			Description("Tab to move between fields • Enter to submit • Ctrl+C to quit"),
	)

	return &IntakeModel{
		form:   form,
		values: v,
		styles: DefaultStyles(),
	}
}

// required returns a validator rejecting blank values.
func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// Input returns the current form values as a generation request.
func (m *IntakeModel) Input() generator.Input {
	return generator.Input{
		Goal:        m.values.goal,
		TargetUsers: m.values.users,
		Constraints: m.values.constraints,
		Template:    domain.Template(m.values.template),
	}
}

// Completed reports whether the form was submitted.
func (m *IntakeModel) Completed() bool {
	return m.completed
}

// Init initializes the model
func (m *IntakeModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages and updates the model
func (m *IntakeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form = m.form.WithWidth(msg.Width)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.completed = true
		return m, tea.Quit
	case huh.StateAborted:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the UI
func (m *IntakeModel) View() string {
	if m.quitting {
		return m.styles.Muted.Render("Cancelled.") + "\n"
	}
	if m.completed {
		return m.styles.Success.Render("✓ Generating backlog...") + "\n"
	}
	return m.form.View()
}

// RunIntake shows the intake form and returns the submitted request.
func RunIntake(defaults generator.Input) (generator.Input, error) {
	model := NewIntakeModel(defaults)

	finalModel, err := tea.NewProgram(model).Run()
	if err != nil {
		return generator.Input{}, fmt.Errorf("run intake form: %w", err)
	}

	m, ok := finalModel.(*IntakeModel)
	if !ok {
		return generator.Input{}, fmt.Errorf("unexpected model type: %T", finalModel)
	}
	if !m.completed {
		return generator.Input{}, ErrCancelled
	}
	return m.Input(), nil
}
