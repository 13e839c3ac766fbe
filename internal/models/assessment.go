package models

// AssessmentDocument is the fully-typed, validated form of the source
// assessment JSON. It is produced once at startup by the assessment
// repository and never mutated afterwards; every downstream component
// works with this type instead of raw dynamic values.
type AssessmentDocument struct {
	Metadata   Metadata           `json:"metadata"`
	Overview   AssessmentOverview `json:"assessment_overview"`
	Sources    []SourceDocument   `json:"source_documents"`
	Frameworks Frameworks         `json:"frameworks"`
}

type Metadata struct {
	Organization    string `json:"organization"`
	AssessmentTitle string `json:"assessment_title"`
	Client          string `json:"client"`
	PreparedBy      string `json:"prepared_by"`
	AssessmentDate  string `json:"assessment_date"`
	Version         string `json:"version"`
}

type AssessmentOverview struct {
	ExecutiveSummary string   `json:"executive_summary"`
	StrategicPillars []string `json:"strategic_pillars"`
	KeyFindings      []string `json:"key_findings"`
}

// SourceDocument is a benchmark reference; Title is always non-blank,
// URL is optional.
type SourceDocument struct {
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

type Frameworks struct {
	Dora       FrameworkSection `json:"dora"`
	BlueOptima FrameworkSection `json:"blueoptima"`
	Space      SpaceSection     `json:"space"`
	Samm       SammSection      `json:"samm"`
}

type FrameworkSection struct {
	Metrics []FrameworkMetric `json:"metrics"`
}

// FrameworkMetric is a single DORA or BlueOptima metric benchmarked
// against elite performance tiers.
type FrameworkMetric struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Category            string         `json:"category"`
	Definition          string         `json:"definition"`
	CurrentValue        float64        `json:"current_value"`
	CurrentValueDisplay string         `json:"current_value_display,omitempty"`
	BenchmarkValue      string         `json:"benchmark_value"`
	PerformanceTier     string         `json:"performance_tier"`
	GapAnalysis         string         `json:"gap_analysis"`
	Notes               []string       `json:"notes,omitempty"`
	Telemetry           *TelemetryData `json:"telemetry,omitempty"`
}

// TelemetryData is the measured counterpart of a survey-reported metric
// value, including the variance between the two.
type TelemetryData struct {
	Value              float64 `json:"value"`
	ValueDisplay       string  `json:"value_display,omitempty"`
	Source             string  `json:"source"`
	MeasurementPeriod  string  `json:"measurement_period"`
	Confidence         string  `json:"confidence,omitempty"`
	VarianceFromSurvey float64 `json:"variance_from_survey"`
	Notes              string  `json:"notes,omitempty"`
}

type SpaceSection struct {
	Dimensions []SpaceDimension `json:"dimensions"`
}

type SpaceDimension struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Definition        string   `json:"definition"`
	SurveyQuestion    string   `json:"survey_question"`
	Scale             string   `json:"scale"`
	CurrentScore      float64  `json:"current_score"`
	TargetScore       float64  `json:"target_score"`
	IndustryTarget    string   `json:"industry_target"`
	SupportingSignals []string `json:"supporting_signals"`
}

type SammSection struct {
	Practices []SammPractice `json:"practices"`
}

// SammPractice is a single OWASP SAMM practice assessment with current
// and target maturity levels on a 0-3 scale.
type SammPractice struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Domain       string   `json:"domain"`
	Description  string   `json:"description"`
	CurrentLevel float64  `json:"current_level"`
	TargetLevel  float64  `json:"target_level"`
	Observations []string `json:"observations"`
}
