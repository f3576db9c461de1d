// Package export renders a spec as a human-readable document, grouping
// stories and tasks along one dimension and appending the risks verbatim.
package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/felixgeelhaar/specflow/internal/backlog"
	"github.com/felixgeelhaar/specflow/internal/domain"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
)

// Format is an export document format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatMarkdown, FormatText}

// ParseFormat validates an export format name. "md" and "txt" are accepted
// as aliases.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", sferrors.NewInvalidValueError("export format", value, names)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return ".md"
}

// Render produces the export document for spec.
func Render(spec *backlog.Spec, format Format, groupBy domain.GroupBy) (string, error) {
	if _, err := domain.NewGroupBy(string(groupBy)); err != nil {
		return "", sferrors.NewInvalidValueError("group-by", string(groupBy), groupNames())
	}

	groups := backlog.GroupItems(spec.Combined(), groupBy)
	switch format {
	case FormatMarkdown:
		return renderMarkdown(spec, groupBy, groups), nil
	case FormatText:
		return renderText(spec, groupBy, groups), nil
	default:
		_, err := ParseFormat(string(format))
		return "", err
	}
}

func renderMarkdown(spec *backlog.Spec, groupBy domain.GroupBy, groups []backlog.Group) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# %s\n\n", title(spec)))
	b.WriteString(fmt.Sprintf("**Goal:** %s  \n", spec.Goal))
	b.WriteString(fmt.Sprintf("**Target users:** %s  \n", spec.TargetUsers))
	if spec.Constraints != "" {
		b.WriteString(fmt.Sprintf("**Constraints:** %s  \n", spec.Constraints))
	}
	b.WriteString(fmt.Sprintf("**Template:** %s  \n", spec.Template))
	if !spec.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("**Generated:** %s  \n", spec.CreatedAt.UTC().Format("2006-01-02 15:04 MST")))
	}

	stories, tasks, risks := spec.Counts()
	b.WriteString(fmt.Sprintf("\n%d stories, %d tasks, %d risks\n\n", stories, tasks, risks))

	b.WriteString(fmt.Sprintf("## Backlog by %s\n\n", groupBy))
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("### %s (%d)\n\n", heading(g.Key), len(g.Items)))
		for _, item := range g.Items {
			b.WriteString(fmt.Sprintf("- **[%s]** %s _(%s)_\n", strings.ToUpper(string(item.Priority)), item.Title, facets(item, groupBy)))
			if item.Description != "" {
				b.WriteString(fmt.Sprintf("  %s\n", item.Description))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Risks & Unknowns\n\n")
	if len(spec.Risks) == 0 {
		b.WriteString("_None identified._\n")
	}
	for _, r := range spec.Risks {
		b.WriteString(fmt.Sprintf("- **%s:** %s\n", r.Type, r.Text))
	}

	return b.String()
}

func renderText(spec *backlog.Spec, groupBy domain.GroupBy, groups []backlog.Group) string {
	var b strings.Builder

	name := title(spec)
	b.WriteString(name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(name))) + "\n\n")

	b.WriteString(fmt.Sprintf("Goal:         %s\n", spec.Goal))
	b.WriteString(fmt.Sprintf("Target users: %s\n", spec.TargetUsers))
	if spec.Constraints != "" {
		b.WriteString(fmt.Sprintf("Constraints:  %s\n", spec.Constraints))
	}
	b.WriteString(fmt.Sprintf("Template:     %s\n", spec.Template))
	if !spec.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Generated:    %s\n", spec.CreatedAt.UTC().Format("2006-01-02 15:04 MST")))
	}
	b.WriteString("\n")

	header := fmt.Sprintf("BACKLOG (by %s)", groupBy)
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")
	for _, g := range groups {
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", strings.ToUpper(g.Key), len(g.Items)))
		for i, item := range g.Items {
			b.WriteString(fmt.Sprintf("  %d. [%s] %s (%s)\n", i+1, item.Priority, item.Title, facets(item, groupBy)))
			if item.Description != "" {
				b.WriteString(fmt.Sprintf("     %s\n", item.Description))
			}
		}
	}
	b.WriteString("\n")

	b.WriteString("RISKS & UNKNOWNS\n")
	b.WriteString(strings.Repeat("-", 16) + "\n")
	if len(spec.Risks) == 0 {
		b.WriteString("  None identified.\n")
	}
	for _, r := range spec.Risks {
		b.WriteString(fmt.Sprintf("  - %s: %s\n", r.Type, r.Text))
	}

	return b.String()
}

// facets lists the item attributes not already shown by the grouping.
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
	return strings.Join(parts, ", ")
}

func groupNames() []string {
	names := make([]string, len(domain.GroupDimensions))
	for i, g := range domain.GroupDimensions {
		names[i] = string(g)
	}
	return names
}

func title(spec *backlog.Spec) string {
	if spec.FeatureName != "" {
		return spec.FeatureName
	}
	return backlog.FeatureName(spec.Goal)
}

func heading(key string) string {
	if key == "" {
		return key
	}
	runes := []rune(key)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Filename suggests a file name for an export of spec: the feature name
// lowercased with every character outside [a-z0-9] replaced by an
// underscore, suffixed with "_spec".
func Filename(spec *backlog.Spec, format Format) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, title(spec))
	return strings.ToLower(name) + "_spec" + format.Extension()
}
