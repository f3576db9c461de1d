package export

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultPreviewWidth is the word-wrap width used when the terminal width is
// unknown.
const DefaultPreviewWidth = 80

// Preview renders a markdown document for the terminal.
func Preview(markdown string, width int) (string, error) {
	if width <= 0 {
		width = DefaultPreviewWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
