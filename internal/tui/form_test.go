package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/generator"
)

func TestNewIntakeModel_Defaults(t *testing.T) {
	m := NewIntakeModel(generator.Input{
		Goal:        "  Ship audit logs ",
		TargetUsers: "admins ",
		Constraints: " SOC2 ",
		Template:    domain.TemplateInternal,
	})

	assert.Equal(t, generator.Input{
		Goal:        "  Ship audit logs ",
		TargetUsers: "admins ",
		Constraints: " SOC2 ",
		Template:    domain.TemplateInternal,
	}, m.Input(), "values pass through untrimmed")
	assert.False(t, m.Completed())
}

func TestNewIntakeModel_UnknownTemplateDefaultsToWeb(t *testing.T) {
	m := NewIntakeModel(generator.Input{Template: "desktop"})
	assert.Equal(t, domain.TemplateWeb, m.Input().Template)

	m = NewIntakeModel(generator.Input{})
	assert.Equal(t, domain.TemplateWeb, m.Input().Template)
}

func TestRequired(t *testing.T) {
	validate := required("goal")

	assert.NoError(t, validate("Ship it"))
	err := validate("  \n")
	require.Error(t, err)
	assert.Equal(t, "goal is required", err.Error())
}

func TestIntakeModel_CtrlCQuits(t *testing.T) {
	m := NewIntakeModel(generator.Input{})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	im := updated.(*IntakeModel)
	assert.True(t, im.quitting)
	assert.False(t, im.Completed())
	assert.Equal(t, "Cancelled.\n", stripANSI(im.View()))
}

func TestIntakeModel_ViewShowsForm(t *testing.T) {
	m := NewIntakeModel(generator.Input{})
	m.Init()
	assert.Contains(t, m.View(), "What do you want to build?")
}

func TestErrCancelledIsContextCanceled(t *testing.T) {
	assert.True(t, errors.Is(ErrCancelled, context.Canceled))
}

func TestTemplateLabelsCoverTemplates(t *testing.T) {
	for _, tmpl := range domain.Templates {
		assert.NotEmpty(t, templateLabels[tmpl], tmpl)
	}
}

func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEscape = false
		case !inEscape:
			out = append(out, r)
		}
	}
	return string(out)
}
