package taxonomy

import "github.com/felixgeelhaar/specflow/internal/domain"

// TaskSpec is a literal task title with its fixed component.
type TaskSpec struct {
	Title     string
	Component domain.Component
}

// RiskSpec is a literal risk note.
type RiskSpec struct {
	Type domain.RiskType
	Text string
}

// TemplateSet is the fixed task and risk list a template contributes.
type TemplateSet struct {
	Template domain.Template
	Tasks    []TaskSpec
	Risks    []RiskSpec
}

// Templates is the template dispatch table. Custom and unknown templates have
// no entry and contribute nothing.
var Templates = []TemplateSet{
	{
		Template: domain.TemplateMobile,
		Tasks: []TaskSpec{
			{"Testing: Perform iOS device testing across multiple screen sizes", domain.ComponentTesting},
			{"Testing: Perform Android device testing across multiple screen sizes", domain.ComponentTesting},
			{"Testing: Validate touch interactions and gesture support", domain.ComponentTesting},
			{"DevOps: Prepare App Store submission and metadata", domain.ComponentDevOps},
			{"DevOps: Prepare Google Play Store submission and metadata", domain.ComponentDevOps},
			{"Frontend: Implement offline-first caching strategy", domain.ComponentFrontend},
			{"Frontend: Optimize assets and bundle size for mobile networks", domain.ComponentFrontend},
			{"Design: Create app store screenshots and promotional graphics", domain.ComponentDesign},
		},
		Risks: []RiskSpec{
			{domain.RiskBlocker, "App store review timelines are unpredictable. Submit early to allow for rejection and resubmission cycles."},
			{domain.RiskUnknown, "Device fragmentation on Android may introduce rendering inconsistencies that need device-specific fixes."},
		},
	},
	{
		Template: domain.TemplateWeb,
		Tasks: []TaskSpec{
			{"Testing: Verify cross-browser compatibility (Chrome, Firefox, Safari, Edge)", domain.ComponentTesting},
			{"Frontend: Implement SEO meta tags, structured data, and sitemap", domain.ComponentFrontend},
			{"DevOps: Configure CDN for static asset delivery", domain.ComponentDevOps},
			{"Frontend: Implement Open Graph and social sharing metadata", domain.ComponentFrontend},
			{"DevOps: Set up SSL certificates and HTTPS redirects", domain.ComponentDevOps},
			{"Frontend: Optimize Core Web Vitals (LCP, FID, CLS)", domain.ComponentFrontend},
			{"Backend: Implement server-side rendering or static generation", domain.ComponentBackend},
		},
		Risks: []RiskSpec{
			{domain.RiskUnknown, "SEO impact of client-side rendering needs evaluation. Server-side rendering may be required for search visibility."},
		},
	},
	{
		Template: domain.TemplateInternal,
		Tasks: []TaskSpec{
			{"Backend: Implement role-based permission system with granular access controls", domain.ComponentBackend},
			{"Backend: Build comprehensive audit logging for all user actions", domain.ComponentBackend},
			{"Frontend: Build admin dashboard with user management and analytics", domain.ComponentFrontend},
			{"Backend: Implement SSO/LDAP integration for enterprise authentication", domain.ComponentBackend},
			{"Frontend: Build activity log viewer for audit trail", domain.ComponentFrontend},
			{"Backend: Implement data export and reporting endpoints", domain.ComponentBackend},
		},
		Risks: []RiskSpec{
			{domain.RiskAssumption, "Existing permission infrastructure can support the required granularity. Custom permission system may be needed."},
			{domain.RiskUnknown, "Integration with existing enterprise identity providers (SSO/LDAP) needs technical investigation."},
		},
	},
}

// ForTemplate returns the set registered for t, or an empty set.
func ForTemplate(t domain.Template) TemplateSet {
	for _, set := range Templates {
		if set.Template == t {
			return set
		}
	}
	return TemplateSet{Template: t}
}
