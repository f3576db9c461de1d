package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
)

// ReviewResult holds the outcome of a review session
type ReviewResult struct {
	// Spec is the edited spec; equal to the input when nothing changed.
	Spec *backlog.Spec
	// Changed reports whether any edit was made.
	Changed bool
	// Save reports whether the user asked to keep the edits.
	Save bool
}

type reviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Delete   key.Binding
	Priority key.Binding
	Edit     key.Binding
	Group    key.Binding
	Save     key.Binding
	Discard  key.Binding
}

// ShortHelp implements help.KeyMap
func (k reviewKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Edit, k.Priority, k.Delete, k.Group, k.Save, k.Discard}
}

// FullHelp implements help.KeyMap
func (k reviewKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var reviewKeys = reviewKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:   key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move up")),
	MoveDown: key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move down")),
	Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
	Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit title")),
	Group:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group by")),
	Save:     key.NewBinding(key.WithKeys("q", "s"), key.WithHelp("q", "save & quit")),
	Discard:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "discard")),
}

// ReviewModel is the BubbleTea model for reviewing and editing a spec
type ReviewModel struct {
	spec        *backlog.Spec
	fingerprint string
	groupBy     domain.GroupBy
	cursor      int
	editing     bool
	input       textinput.Model
	help        help.Model
	styles      Styles
	status      string
	result      *ReviewResult
	width       int
	height      int
}

// NewReviewModel creates a review screen for spec, grouped by groupBy.
func NewReviewModel(spec *backlog.Spec, groupBy domain.GroupBy) ReviewModel {
	if _, err := domain.NewGroupBy(string(groupBy)); err != nil {
		groupBy = domain.GroupByType
	}

	input := textinput.New()
	input.Prompt = "title> "
	input.CharLimit = 200

	fp, _ := backlog.Fingerprint(spec)
	return ReviewModel{
		spec:        spec,
		fingerprint: fp,
		groupBy:     groupBy,
		input:       input,
		help:        help.New(),
		styles:      DefaultStyles(),
	}
}

// Result returns the session outcome, or nil while the session is running.
func (m ReviewModel) Result() *ReviewResult {
	return m.result
}

// Spec returns the spec as currently edited.
func (m ReviewModel) Spec() *backlog.Spec {
	return m.spec
}

// Init initializes the model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// visible returns the items in display order: grouped, with groups in first
// appearance order.
func (m ReviewModel) visible() []backlog.Item {
	groups := backlog.GroupItems(m.spec.Combined(), m.groupBy)
	items := make([]backlog.Item, 0, len(m.spec.Stories)+len(m.spec.Tasks))
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}

func (m ReviewModel) current() (backlog.Item, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return backlog.Item{}, false
	}
	return items[m.cursor], true
}

// follow moves the cursor to the item with id in display order.
func (m *ReviewModel) follow(id string) {
	for i, item := range m.visible() {
		if item.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *ReviewModel) clamp() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles messages and updates the model
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m ReviewModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		title := strings.TrimSpace(m.input.Value())
		item, ok := m.current()
		if !ok || title == "" || title == item.Title {
			return m, nil
		}
		m.spec, _ = m.spec.WithItemUpdated(item.ID, backlog.ItemPatch{Title: &title})
		m.status = "title updated"
		return m, nil

	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.status = "edit cancelled"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ReviewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.visible()
	m.status = ""

	switch {
	case key.Matches(msg, reviewKeys.Save):
		m.result = m.finish(true)
		return m, tea.Quit

	case key.Matches(msg, reviewKeys.Discard):
		m.result = m.finish(false)
		return m, tea.Quit

	case key.Matches(msg, reviewKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, reviewKeys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, reviewKeys.MoveUp):
		if m.cursor > 0 {
			source := items[m.cursor].ID
			m.spec, _ = m.spec.WithItemMoved(source, items[m.cursor-1].ID)
			m.follow(source)
		}

	case key.Matches(msg, reviewKeys.MoveDown):
		if m.cursor < len(items)-1 {
			source := items[m.cursor].ID
			m.spec, _ = m.spec.WithItemMoved(source, items[m.cursor+1].ID)
			m.follow(source)
		}

	case key.Matches(msg, reviewKeys.Delete):
		if item, ok := m.current(); ok {
			m.spec, _ = m.spec.WithItemDeleted(item.ID)
			m.clamp()
			m.status = fmt.Sprintf("deleted %q", item.Title)
		}

	case key.Matches(msg, reviewKeys.Priority):
		if item, ok := m.current(); ok {
			next := item.Priority.Next()
			m.spec, _ = m.spec.WithItemUpdated(item.ID, backlog.ItemPatch{Priority: &next})
			m.follow(item.ID)
		}

	case key.Matches(msg, reviewKeys.Edit):
		if item, ok := m.current(); ok {
			m.editing = true
			m.input.SetValue(item.Title)
			m.input.CursorEnd()
			return m, m.input.Focus()
		}

	case key.Matches(msg, reviewKeys.Group):
		id := ""
		if item, ok := m.current(); ok {
			id = item.ID
		}
		m.groupBy = m.groupBy.Next()
		m.follow(id)
	}
	return m, nil
}

func (m ReviewModel) finish(save bool) *ReviewResult {
	fp, _ := backlog.Fingerprint(m.spec)
	changed := fp != m.fingerprint
	return &ReviewResult{
		Spec:    m.spec,
		Changed: changed,
		Save:    save && changed,
	}
}

// View renders the current state
func (m ReviewModel) View() string {
	if m.result != nil {
		switch {
		case m.result.Save:
			return m.styles.Success.Render("✓ Changes saved") + "\n"
		case m.result.Changed:
			return m.styles.Warning.Render("Changes discarded") + "\n"
		default:
			return m.styles.Muted.Render("No changes") + "\n"
		}
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("📋 " + m.spec.FeatureName))
	b.WriteString("\n")
	stories, tasks, risks := m.spec.Counts()
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("%d stories • %d tasks • %d risks • grouped by %s",
		stories, tasks, risks, m.groupBy)))
	b.WriteString("\n\n")

	i := 0
	for _, g := range backlog.GroupItems(m.spec.Combined(), m.groupBy) {
		b.WriteString(m.styles.Header.Render(fmt.Sprintf("%s (%d)", strings.ToUpper(g.Key), len(g.Items))))
		b.WriteString("\n")
		for _, item := range g.Items {
			style, cursor := m.styles.Item, "  "
			if i == m.cursor {
				style, cursor = m.styles.Selected, "→ "
			}
			line := fmt.Sprintf("%s%s %s %s", cursor, m.styles.PriorityBadge(item.Priority), item.Title,
				m.styles.Muted.Render(facets(item, m.groupBy)))
			b.WriteString(style.Render(line))
			b.WriteString("\n")
			i++
		}
		b.WriteString("\n")
	}
	if i == 0 {
		b.WriteString(m.styles.Muted.Render("  No stories or tasks left."))
		b.WriteString("\n\n")
	}

	if len(m.spec.Risks) > 0 {
		var risks strings.Builder
		for j, r := range m.spec.Risks {
			if j > 0 {
				risks.WriteString("\n")
			}
			fmt.Fprintf(&risks, "%s: %s", r.Type, r.Text)
		}
		b.WriteString(m.styles.Border.Render(risks.String()))
		b.WriteString("\n")
	}

	if m.editing {
		b.WriteString("\n  ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Help.Render("enter: apply • esc: cancel"))
		return b.String()
	}

	if m.status != "" {
		b.WriteString("\n  ")
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(m.help.View(reviewKeys)))
	return b.String()
}

func facets(item backlog.Item, groupBy domain.GroupBy) string {
	var parts []string
	if groupBy != domain.GroupByType {
		parts = append(parts, string(item.Type))
	}
	if groupBy != domain.GroupByComponent && item.Component != "" {
		parts = append(parts, string(item.Component))
	}
	if groupBy != domain.GroupByPhase && item.Phase != "" {
		parts = append(parts, string(item.Phase))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " · ") + ")"
}

// RunReview launches an interactive TUI for editing spec
func RunReview(spec *backlog.Spec, groupBy domain.GroupBy) (*ReviewResult, error) {
	program := tea.NewProgram(NewReviewModel(spec, groupBy), tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running review UI: %w", err)
	}

	m, ok := finalModel.(ReviewModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type: %T", finalModel)
	}
	if m.result == nil {
		return &ReviewResult{Spec: spec}, nil
	}
	return m.result, nil
}
