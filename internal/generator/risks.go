package generator

import (
	"github.com/felixgeelhaar/specflow/internal/analyzer"
	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/taxonomy"
)

var (
	stableRequirementsRisk = taxonomy.RiskSpec{
		Type: domain.RiskAssumption,
		Text: "User requirements are assumed to be stable. Scope changes during development may impact timeline and resource allocation.",
	}
	thirdPartyRisk = taxonomy.RiskSpec{
		Type: domain.RiskUnknown,
		Text: "Third-party service availability and API rate limits need to be validated before integration.",
	}
	performanceRisk = taxonomy.RiskSpec{
		Type: domain.RiskBlocker,
		Text: "Performance at scale has not been validated. Load testing is required to identify bottlenecks before launch.",
	}
	complianceRisk = taxonomy.RiskSpec{
		Type: domain.RiskBlocker,
		Text: "Security audit and compliance review required. Data handling must comply with relevant regulations before deployment.",
	}
	integrationRisk = taxonomy.RiskSpec{
		Type: domain.RiskUnknown,
		Text: "External API contracts and versioning strategy need clarification. Changes to third-party APIs could break integration.",
	}
	migrationRisk = taxonomy.RiskSpec{
		Type: domain.RiskBlocker,
		Text: "Data migration from legacy systems requires detailed mapping. Incomplete migrations could cause data loss.",
	}
	capacityRisk = taxonomy.RiskSpec{
		Type: domain.RiskAssumption,
		Text: "Team capacity and skill availability are sufficient for the estimated timeline. Resource conflicts may delay delivery.",
	}
)

// riskSpecs builds the ordered risk list. The two baseline notes open the
// list and the capacity assumption always closes it.
func riskSpecs(in Input) []taxonomy.RiskSpec {
	goal := analyzer.Normalize(in.Goal)
	constraints := analyzer.Normalize(in.Constraints)

	risks := []taxonomy.RiskSpec{stableRequirementsRisk, thirdPartyRisk}

	if goal.HasAny(taxonomy.ScaleGoalWords...) || constraints.HasAny(taxonomy.PerformanceConstraintWords...) {
		risks = append(risks, performanceRisk)
	}
	if goal.HasAny(taxonomy.SensitiveGoalWords...) || constraints.HasAny(taxonomy.ComplianceConstraintWords...) {
		risks = append(risks, complianceRisk)
	}
	if goal.HasAny(taxonomy.IntegrationGoalWords...) {
		risks = append(risks, integrationRisk)
	}

	risks = append(risks, taxonomy.ForTemplate(in.Template).Risks...)

	if goal.HasAny(taxonomy.MigrationGoalWords...) {
		risks = append(risks, migrationRisk)
	}

	return append(risks, capacityRisk)
}
