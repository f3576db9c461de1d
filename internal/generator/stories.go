package generator

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/specflow/internal/analyzer"
	"github.com/felixgeelhaar/specflow/internal/taxonomy"
)

// storyTitles builds the ordered story titles for an input. Ids, priorities,
// and the fixed design component are added by the engine.
func storyTitles(in Input) []string {
	userTypes := analyzer.DetectUserTypes(in.TargetUsers)
	primary := userTypes[0]
	goalTokens := analyzer.Normalize(in.Goal)
	action := strings.TrimSuffix(strings.ToLower(in.Goal), ".")

	titles := make([]string, 0, len(userTypes)+10)
	for _, ut := range userTypes {
		titles = append(titles, fmt.Sprintf("As a %s, I want to %s so that I can accomplish my objectives efficiently", ut, action))
	}

	titles = append(titles,
		fmt.Sprintf("As a %s, I want to easily find and access the feature so that I can use it without confusion", primary),
		fmt.Sprintf("As a %s, I want to receive clear feedback when performing actions so that I know my actions were successful", primary),
		fmt.Sprintf("As a %s, I want to see helpful error messages when something goes wrong so that I can recover quickly", primary),
	)

	if goalTokens.HasAny(taxonomy.PersistenceWords...) {
		titles = append(titles, fmt.Sprintf("As a %s, I want my data to be saved automatically so that I don't lose my work", primary))
	}
	if goalTokens.HasAny(taxonomy.MobileWords...) {
		titles = append(titles, "As a mobile user, I want the feature to work seamlessly on my device so that I can use it on the go")
	}
	if goalTokens.HasAny(taxonomy.CollaborationWords...) {
		titles = append(titles, "As a team member, I want to share and collaborate on content so that my team stays aligned")
	}

	titles = append(titles, fmt.Sprintf("As a %s, I want to customize my preferences so that the feature works the way I prefer", primary))

	if in.Constraints == "" {
		return titles
	}

	constraintTokens := analyzer.Normalize(in.Constraints)
	if constraintTokens.HasAny(taxonomy.SpeedConstraintWords...) {
		titles = append(titles, fmt.Sprintf("As a %s, I want the feature to load quickly so that I'm not frustrated by delays", primary))
	}
	if constraintTokens.HasAny(taxonomy.SecurityConstraintWords...) {
		titles = append(titles, fmt.Sprintf("As a %s, I want my data to be secure so that my privacy is protected", primary))
	}
	if constraintTokens.HasAny(taxonomy.AccessibilityConstraintWords...) {
		titles = append(titles, fmt.Sprintf("As a %s with accessibility needs, I want the feature to be fully accessible so that I can use it without barriers", primary))
	}

	return titles
}
