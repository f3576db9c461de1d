package ux

import (
	"fmt"
	"strings"
)

// SuggestNextSteps returns the common commands for a new user.
func SuggestNextSteps() string {
	return strings.Join([]string{
		"specflow generate --goal \"...\" --users \"...\"",
		"specflow list",
		"specflow export <id>",
	}, ", ")
}

// NextStepsAfterGenerate returns follow-up commands for a freshly generated
// spec. Unsaved specs cannot be revisited, so only saving is suggested.
func NextStepsAfterGenerate(specID string, saved bool) []string {
	if !saved {
		return []string{"Re-run without --no-save to keep this spec"}
	}
	short := ShortID(specID)
	return []string{
		fmt.Sprintf("specflow review %s", short),
		fmt.Sprintf("specflow export %s --out -", short),
	}
}

// ShortID abbreviates an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
