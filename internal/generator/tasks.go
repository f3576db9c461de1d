package generator

import (
	"strings"

	"github.com/felixgeelhaar/specflow/internal/analyzer"
	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/taxonomy"
)

// taskGate is a pair of tasks appended when the goal mentions any of Words.
type taskGate struct {
	Words []string
	Tasks []taxonomy.TaskSpec
}

var taskGates = []taskGate{
	{
		Words: taxonomy.SearchWords,
		Tasks: []taxonomy.TaskSpec{
			{Title: "Frontend: Build search and filter UI with real-time results", Component: domain.ComponentFrontend},
			{Title: "Backend: Implement search indexing and query optimization", Component: domain.ComponentBackend},
		},
	},
	{
		Words: taxonomy.NotificationWords,
		Tasks: []taxonomy.TaskSpec{
			{Title: "Backend: Implement notification service with email and in-app support", Component: domain.ComponentBackend},
			{Title: "Frontend: Build notification center UI component", Component: domain.ComponentFrontend},
		},
	},
	{
		Words: taxonomy.UploadWords,
		Tasks: []taxonomy.TaskSpec{
			{Title: "Backend: Implement file upload service with validation and storage", Component: domain.ComponentBackend},
			{Title: "Frontend: Build drag-and-drop file upload component", Component: domain.ComponentFrontend},
		},
	},
	{
		Words: taxonomy.AuthWords,
		Tasks: []taxonomy.TaskSpec{
			{Title: "Backend: Implement authentication flow with JWT tokens", Component: domain.ComponentBackend},
			{Title: "Frontend: Build login, registration, and password reset pages", Component: domain.ComponentFrontend},
		},
	},
}

// baselineTasks returns the 16 tasks every goal gets.
func baselineTasks(goalLower string) []taxonomy.TaskSpec {
	return []taxonomy.TaskSpec{
		{Title: "Frontend: Design and implement main UI layout for " + goalLower, Component: domain.ComponentFrontend},
		{Title: "Frontend: Build interactive form components with validation", Component: domain.ComponentFrontend},
		{Title: "Frontend: Implement responsive design for mobile and tablet viewports", Component: domain.ComponentFrontend},
		{Title: "Frontend: Add loading states and skeleton screens for async operations", Component: domain.ComponentFrontend},
		{Title: "Frontend: Implement error handling UI with user-friendly messages", Component: domain.ComponentFrontend},

		{Title: "Backend: Design data models and schema for " + goalLower, Component: domain.ComponentBackend},
		{Title: "Backend: Implement API endpoints for CRUD operations", Component: domain.ComponentBackend},
		{Title: "Backend: Add input validation and sanitization middleware", Component: domain.ComponentBackend},
		{Title: "Backend: Implement error handling and logging", Component: domain.ComponentBackend},

		{Title: "Design: Create wireframes and high-fidelity mockups", Component: domain.ComponentDesign},
		{Title: "Design: Define component library and design tokens", Component: domain.ComponentDesign},

		{Title: "Testing: Write unit tests for core business logic", Component: domain.ComponentTesting},
		{Title: "Testing: Create integration tests for API endpoints", Component: domain.ComponentTesting},
		{Title: "Testing: Perform cross-browser and device testing", Component: domain.ComponentTesting},

		{Title: "DevOps: Set up CI/CD pipeline for automated deployments", Component: domain.ComponentDevOps},
		{Title: "DevOps: Configure staging and production environments", Component: domain.ComponentDevOps},
	}
}

// taskSpecs builds the ordered task list: baseline, gated pairs, then the
// template's fixed tasks.
func taskSpecs(in Input) []taxonomy.TaskSpec {
	goalTokens := analyzer.Normalize(in.Goal)
	tasks := baselineTasks(strings.ToLower(in.Goal))

	for _, gate := range taskGates {
		if goalTokens.HasAny(gate.Words...) {
			tasks = append(tasks, gate.Tasks...)
		}
	}

	return append(tasks, taxonomy.ForTemplate(in.Template).Tasks...)
}
