package taxonomy

// Keyword sets that gate conditional stories, tasks, and risks. A gate fires
// when a normalized token equals one of its words.
//
// Multi-word or hyphenated entries ("screen reader", "real-time",
// "third-party") can never equal a single normalized token. They are kept
// as-is so the tables stay faithful to the published keyword lists.

// Story gates on the goal.
var (
	PersistenceWords   = []string{"save", "store", "data", "record", "history", "draft"}
	MobileWords        = []string{"mobile", "responsive", "phone", "tablet"}
	CollaborationWords = []string{"team", "share", "collaborate", "invite", "assign"}
)

// Story gates on the constraints.
var (
	SpeedConstraintWords         = []string{"performance", "fast", "speed", "quick", "responsive"}
	SecurityConstraintWords      = []string{"secure", "security", "privacy", "encrypt", "auth"}
	AccessibilityConstraintWords = []string{"accessible", "accessibility", "a11y", "wcag", "screen reader"}
)

// Task pair gates on the goal.
var (
	SearchWords       = []string{"search", "filter", "find", "query"}
	NotificationWords = []string{"notification", "alert", "email", "notify"}
	UploadWords       = []string{"upload", "file", "image", "media", "attachment"}
	AuthWords         = []string{"auth", "login", "password", "account", "user"}
)

// Risk gates.
var (
	ScaleGoalWords             = []string{"large", "scale", "data", "real-time", "streaming", "big"}
	PerformanceConstraintWords = []string{"performance", "fast", "latency"}
	SensitiveGoalWords         = []string{"auth", "payment", "sensitive", "personal", "financial", "health"}
	ComplianceConstraintWords  = []string{"security", "compliance", "gdpr", "hipaa", "pci"}
	IntegrationGoalWords       = []string{"integrate", "api", "third-party", "external", "connect", "sync"}
	MigrationGoalWords         = []string{"migrate", "legacy", "existing", "convert", "import"}
)
