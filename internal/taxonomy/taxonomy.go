// Package taxonomy holds the static keyword tables that drive classification.
//
// Every table is an ordered slice rather than a map: classification is
// tie-broken by declaration order, so the order is part of the contract.
package taxonomy

import "github.com/felixgeelhaar/specflow/internal/domain"

// Category maps one component to the keywords that identify it.
type Category struct {
	Component domain.Component
	Keywords  []string
}

// Components is the component classification table in match order.
var Components = []Category{
	{
		Component: domain.ComponentFrontend,
		Keywords: []string{
			"ui", "interface", "page", "form", "button", "layout", "display", "view",
			"dashboard", "screen", "widget", "modal", "component", "responsive",
			"animation", "theme", "navigation", "menu", "sidebar", "header", "footer",
			"card", "list", "table", "chart", "graph", "notification", "toast", "popup",
		},
	},
	{
		Component: domain.ComponentBackend,
		Keywords: []string{
			"api", "server", "database", "endpoint", "auth", "data", "storage",
			"service", "logic", "process", "queue", "cache", "webhook", "cron",
			"migration", "model", "controller", "middleware", "session", "token",
			"encryption",
		},
	},
	{
		Component: domain.ComponentDesign,
		Keywords: []string{
			"design", "ux", "wireframe", "mockup", "prototype", "brand", "style",
			"color", "typography", "icon", "illustration", "accessibility", "usability",
		},
	},
	{
		Component: domain.ComponentTesting,
		Keywords: []string{
			"test", "qa", "quality", "bug", "regression", "automation", "coverage",
			"integration", "e2e", "unit", "performance", "load", "stress",
		},
	},
	{
		Component: domain.ComponentDevOps,
		Keywords: []string{
			"deploy", "ci", "cd", "pipeline", "docker", "cloud", "monitoring",
			"logging", "infrastructure", "scaling", "ssl", "domain", "cdn", "hosting",
		},
	},
}

// DefaultComponent is used when no category matches.
const DefaultComponent = domain.ComponentFrontend

// UserTypes is the user-type vocabulary in match order.
var UserTypes = []string{
	"end user", "admin", "team member", "manager", "developer",
	"new user", "power user", "mobile user", "guest", "subscriber",
}

// DefaultUserType is used when no vocabulary entry is mentioned.
const DefaultUserType = "end user"

// Phases is the phase vocabulary in delivery order.
var Phases = domain.Phases
