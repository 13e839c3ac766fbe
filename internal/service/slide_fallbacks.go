package service

import "deck-assist/internal/models"

// Default framework content used when the assessment document omits a
// section entirely; keeps the deck renderable from a sparse document.

var fallbackSpaceDimensions = []models.SpaceDimension{
	{
		ID:             "satisfaction_wellbeing",
		Name:           "Satisfaction & Well-being",
		Definition:     "Developer morale and day-to-day experience.",
		SurveyQuestion: "Overall, I'm satisfied with my day-to-day developer experience.",
		Scale:          "1-5 Likert",
		CurrentScore:   2.8,
		TargetScore:    4.5,
		IndustryTarget: "Strongly Agree (4.5+)",
		SupportingSignals: []string{
			"Tool friction reported by 65% of developers",
			"High context-switching between tasks",
			"Limited time for focused coding",
		},
	},
	{
		ID:             "performance",
		Name:           "Performance",
		Definition:     "Confidence in quality and impact of delivered code.",
		SurveyQuestion: "The team has high confidence that released code meets reliability and performance expectations.",
		Scale:          "1-5 Likert",
		CurrentScore:   3.1,
		TargetScore:    4.5,
		IndustryTarget: "Strongly Agree (4.5+)",
		SupportingSignals: []string{
			"28% change failure rate indicates quality concerns",
			"Limited automated testing coverage",
			"Post-release defects common",
		},
	},
	{
		ID:             "activity",
		Name:           "Activity",
		Definition:     "Balance of coding versus manual/repetitive tasks.",
		SurveyQuestion: "I spend most of my time coding rather than on manual or repetitive tasks.",
		Scale:          "1-5 Likert",
		CurrentScore:   2.6,
		TargetScore:    4.5,
		IndustryTarget: "Strongly Agree (4.5+)",
		SupportingSignals: []string{
			"Manual deployment processes consume 15-20% of developer time",
			"Environment setup takes 2-3 days for new developers",
			"Repetitive testing and verification tasks",
		},
	},
	{
		ID:             "communication_collaboration",
		Name:           "Communication & Collaboration",
		Definition:     "Cross-functional alignment and knowledge sharing.",
		SurveyQuestion: "Product, engineering, and design share a common understanding of priorities.",
		Scale:          "1-5 Likert",
		CurrentScore:   3.3,
		TargetScore:    4.5,
		IndustryTarget: "Strongly Agree (4.5+)",
		SupportingSignals: []string{
			"Siloed team structure limits cross-functional collaboration",
			"Unclear product roadmap priorities",
			"Limited shared documentation",
		},
	},
	{
		ID:             "efficiency_flow",
		Name:           "Efficiency & Flow",
		Definition:     "Frictionless developer environments and uninterrupted focus.",
		SurveyQuestion: "Development environments are consistent and easy to set up.",
		Scale:          "1-5 Likert",
		CurrentScore:   2.4,
		TargetScore:    4.5,
		IndustryTarget: "Strongly Agree (4.5+)",
		SupportingSignals: []string{
			"Inconsistent local development environments",
			"Frequent build failures and dependency issues",
			"No containerized development setup",
		},
	},
}

var fallbackSammPractices = []models.SammPractice{
	{
		ID:           "governance_strategy",
		Name:         "Strategy & Metrics",
		Domain:       "Governance",
		Description:  "Security strategy alignment and measurable objectives across the engineering organisation.",
		CurrentLevel: 0.8,
		TargetLevel:  2.5,
		Observations: []string{
			"No formal application security roadmap",
			"Security objectives not tracked in delivery metrics",
		},
	},
	{
		ID:           "design_threat_assessment",
		Name:         "Threat Assessment",
		Domain:       "Design",
		Description:  "Systematic identification of threats against applications and their data flows.",
		CurrentLevel: 0.5,
		TargetLevel:  2.0,
		Observations: []string{
			"Threat modelling not part of design reviews",
			"Risk profiles missing for customer-facing services",
		},
	},
	{
		ID:           "implementation_secure_build",
		Name:         "Secure Build",
		Domain:       "Implementation",
		Description:  "Build pipeline hardening and dependency management as part of routine delivery.",
		CurrentLevel: 1.2,
		TargetLevel:  2.5,
		Observations: []string{
			"Dependency scanning runs ad hoc, not on every build",
			"Build provenance is not recorded",
		},
	},
	{
		ID:           "verification_security_testing",
		Name:         "Security Testing",
		Domain:       "Verification",
		Description:  "Automated and manual security testing integrated into the delivery pipeline.",
		CurrentLevel: 0.9,
		TargetLevel:  2.5,
		Observations: []string{
			"Static analysis limited to a subset of repositories",
			"No regular penetration testing cadence",
		},
	},
	{
		ID:           "operations_incident_management",
		Name:         "Incident Management",
		Domain:       "Operations",
		Description:  "Detection of and response to security incidents in production systems.",
		CurrentLevel: 1.0,
		TargetLevel:  2.5,
		Observations: []string{
			"Incident runbooks exist but are untested",
			"Alerting lacks security-specific signals",
		},
	},
}
