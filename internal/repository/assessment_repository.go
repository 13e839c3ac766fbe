package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"deck-assist/internal/models"

	"go.uber.org/zap"
)

type AssessmentRepository struct {
	path   string
	logger *zap.Logger
}

func NewAssessmentRepository(path string, logger *zap.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		path:   path,
		logger: logger,
	}
}

// rawDocument mirrors the shape of the source JSON with loose typing on
// the fields that are hand-edited and unreliable. Metric, dimension and
// practice collections keep typed fields where the template is stable.
type rawDocument struct {
	Metadata            map[string]any `json:"metadata"`
	AssessmentOverview  rawOverview    `json:"assessment_overview"`
	BenchmarksReference rawBenchmarks  `json:"benchmarks_reference"`
	Frameworks          rawFrameworks  `json:"frameworks"`
}

type rawOverview struct {
	ExecutiveSummary any `json:"executive_summary"`
	StrategicPillars any `json:"strategic_pillars"`
	KeyFindings      any `json:"key_findings"`
}

type rawBenchmarks struct {
	SourceDocuments any `json:"source_documents"`
}

type rawFrameworks struct {
	Dora       rawFrameworkSection `json:"dora"`
	BlueOptima rawFrameworkSection `json:"blueoptima"`
	Space      rawSpaceSection     `json:"space"`
	Samm       rawSammSection      `json:"samm"`
}

type rawFrameworkSection struct {
	Metrics []rawMetric `json:"metrics"`
}

type rawMetric struct {
	ID                  any           `json:"id"`
	Name                any           `json:"name"`
	Category            any           `json:"category"`
	Definition          any           `json:"definition"`
	CurrentValue        float64       `json:"current_value"`
	CurrentValueDisplay any           `json:"current_value_display"`
	BenchmarkValue      any           `json:"benchmark_value"`
	PerformanceTier     any           `json:"performance_tier"`
	GapAnalysis         any           `json:"gap_analysis"`
	Notes               any           `json:"notes"`
	Telemetry           *rawTelemetry `json:"telemetry"`
}

type rawTelemetry struct {
	Value              float64 `json:"value"`
	ValueDisplay       any     `json:"value_display"`
	Source             any     `json:"source"`
	MeasurementPeriod  any     `json:"measurement_period"`
	Confidence         any     `json:"confidence"`
	VarianceFromSurvey float64 `json:"variance_from_survey"`
	Notes              any     `json:"notes"`
}

type rawSpaceSection struct {
	Dimensions []rawDimension `json:"dimensions"`
}

type rawDimension struct {
	ID                any     `json:"id"`
	Name              any     `json:"name"`
	Definition        any     `json:"definition"`
	SurveyQuestion    any     `json:"survey_question"`
	Scale             any     `json:"scale"`
	CurrentScore      float64 `json:"current_score"`
	TargetScore       float64 `json:"target_score"`
	IndustryTarget    any     `json:"industry_target"`
	SupportingSignals any     `json:"supporting_signals"`
}

type rawSammSection struct {
	Practices []rawPractice `json:"practices"`
}

type rawPractice struct {
	ID           any     `json:"id"`
	Name         any     `json:"name"`
	Domain       any     `json:"domain"`
	Description  any     `json:"description"`
	CurrentLevel float64 `json:"current_level"`
	TargetLevel  float64 `json:"target_level"`
	Observations any     `json:"observations"`
}

// Load reads and validates the assessment document, producing the
// fully-typed in-memory form every downstream component works with.
// The document is immutable once loaded.
func (r *AssessmentRepository) Load() (*models.AssessmentDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read assessment document: %w", err)
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse assessment document: %w", err)
	}

	doc := normalizeDocument(&raw)

	r.logger.Info("Assessment document loaded",
		zap.String("path", r.path),
		zap.Int("dora_metrics", len(doc.Frameworks.Dora.Metrics)),
		zap.Int("blueoptima_metrics", len(doc.Frameworks.BlueOptima.Metrics)),
		zap.Int("space_dimensions", len(doc.Frameworks.Space.Dimensions)),
		zap.Int("samm_practices", len(doc.Frameworks.Samm.Practices)),
	)

	return doc, nil
}

func normalizeDocument(raw *rawDocument) *models.AssessmentDocument {
	meta := raw.Metadata
	if meta == nil {
		meta = map[string]any{}
	}

	return &models.AssessmentDocument{
		Metadata: models.Metadata{
			Organization:    toTrimmedString(meta["organization"], ""),
			AssessmentTitle: toTrimmedString(meta["assessment_title"], ""),
			Client:          toTrimmedString(meta["client"], ""),
			PreparedBy:      toTrimmedString(meta["prepared_by"], ""),
			AssessmentDate:  toTrimmedString(meta["assessment_date"], ""),
			Version:         toTrimmedString(meta["version"], ""),
		},
		Overview: models.AssessmentOverview{
			ExecutiveSummary: toTrimmedString(raw.AssessmentOverview.ExecutiveSummary, ""),
			StrategicPillars: toTrimmedStringSlice(raw.AssessmentOverview.StrategicPillars),
			KeyFindings:      toTrimmedStringSlice(raw.AssessmentOverview.KeyFindings),
		},
		Sources: toSourceDocuments(raw.BenchmarksReference.SourceDocuments),
		Frameworks: models.Frameworks{
			Dora:       models.FrameworkSection{Metrics: normalizeMetrics(raw.Frameworks.Dora.Metrics)},
			BlueOptima: models.FrameworkSection{Metrics: normalizeMetrics(raw.Frameworks.BlueOptima.Metrics)},
			Space:      models.SpaceSection{Dimensions: normalizeDimensions(raw.Frameworks.Space.Dimensions)},
			Samm:       models.SammSection{Practices: normalizePractices(raw.Frameworks.Samm.Practices)},
		},
	}
}

func normalizeMetrics(raw []rawMetric) []models.FrameworkMetric {
	metrics := make([]models.FrameworkMetric, 0, len(raw))
	for _, m := range raw {
		id := toTrimmedString(m.ID, "")
		if id == "" {
			continue
		}
		metric := models.FrameworkMetric{
			ID:                  id,
			Name:                toTrimmedString(m.Name, id),
			Category:            toTrimmedString(m.Category, ""),
			Definition:          toTrimmedString(m.Definition, ""),
			CurrentValue:        m.CurrentValue,
			CurrentValueDisplay: toDisplayString(m.CurrentValueDisplay, ""),
			BenchmarkValue:      toDisplayString(m.BenchmarkValue, ""),
			PerformanceTier:     toTrimmedString(m.PerformanceTier, ""),
			GapAnalysis:         toTrimmedString(m.GapAnalysis, ""),
			Notes:               toTrimmedStringSlice(m.Notes),
		}
		if m.Telemetry != nil {
			metric.Telemetry = &models.TelemetryData{
				Value:              m.Telemetry.Value,
				ValueDisplay:       toDisplayString(m.Telemetry.ValueDisplay, ""),
				Source:             toTrimmedString(m.Telemetry.Source, ""),
				MeasurementPeriod:  toTrimmedString(m.Telemetry.MeasurementPeriod, ""),
				Confidence:         toTrimmedString(m.Telemetry.Confidence, ""),
				VarianceFromSurvey: m.Telemetry.VarianceFromSurvey,
				Notes:              toTrimmedString(m.Telemetry.Notes, ""),
			}
		}
		metrics = append(metrics, metric)
	}
	return metrics
}

func normalizeDimensions(raw []rawDimension) []models.SpaceDimension {
	dimensions := make([]models.SpaceDimension, 0, len(raw))
	for _, d := range raw {
		id := toTrimmedString(d.ID, "")
		if id == "" {
			continue
		}
		dimensions = append(dimensions, models.SpaceDimension{
			ID:                id,
			Name:              toTrimmedString(d.Name, id),
			Definition:        toTrimmedString(d.Definition, ""),
			SurveyQuestion:    toTrimmedString(d.SurveyQuestion, ""),
			Scale:             toTrimmedString(d.Scale, ""),
			CurrentScore:      d.CurrentScore,
			TargetScore:       d.TargetScore,
			IndustryTarget:    toTrimmedString(d.IndustryTarget, ""),
			SupportingSignals: toTrimmedStringSlice(d.SupportingSignals),
		})
	}
	return dimensions
}

func normalizePractices(raw []rawPractice) []models.SammPractice {
	practices := make([]models.SammPractice, 0, len(raw))
	for _, p := range raw {
		id := toTrimmedString(p.ID, "")
		if id == "" {
			continue
		}
		practices = append(practices, models.SammPractice{
			ID:           id,
			Name:         toTrimmedString(p.Name, id),
			Domain:       toTrimmedString(p.Domain, ""),
			Description:  toTrimmedString(p.Description, ""),
			CurrentLevel: p.CurrentLevel,
			TargetLevel:  p.TargetLevel,
			Observations: toTrimmedStringSlice(p.Observations),
		})
	}
	return practices
}
