package service

import (
	"strings"
	"testing"

	"deck-assist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func emptyDocument() *models.AssessmentDocument {
	return &models.AssessmentDocument{}
}

func TestBuildSlidesDeckShape(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())
	slides := svc.Slides()

	require.Len(t, slides, 6)
	assert.Equal(t, "intro", slides[0].SlideID())
	assert.Equal(t, models.LayoutBrand, slides[0].SlideLayout())

	seen := make(map[string]bool)
	for _, slide := range slides {
		assert.False(t, seen[slide.SlideID()], "duplicate slide id %s", slide.SlideID())
		seen[slide.SlideID()] = true
	}
}

func TestSlidesMemoized(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())
	first := svc.Slides()
	second := svc.Slides()
	require.Len(t, second, len(first))
	assert.Same(t, &first[0], &second[0])
}

func TestSlideByID(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())

	slide, ok := svc.SlideByID("space-framework")
	require.True(t, ok)
	assert.Equal(t, models.LayoutSpaceFramework, slide.SlideLayout())

	_, ok = svc.SlideByID("missing")
	assert.False(t, ok)
}

func TestBuildSlidesAppliesFallbacks(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())
	slides := svc.Slides()

	intro := slides[0].(models.BrandSlide)
	assert.Contains(t, intro.Hero.Tagline, "Mag Tech AI")

	synopsis := slides[1].(models.SynopsisSlide)
	assert.Equal(t, fallbackPillars, synopsis.Synopsis.Pillars)
	assert.Equal(t, fallbackFindings, synopsis.Synopsis.Findings)
	assert.Equal(t, fallbackSources, synopsis.Synopsis.Sources)
	assert.NotEmpty(t, synopsis.Synopsis.Paragraphs)
}

func TestBuildSlidesUsesDocumentMetadata(t *testing.T) {
	doc := &models.AssessmentDocument{
		Metadata: models.Metadata{
			Organization:    "Acme Corp",
			AssessmentTitle: "Acme Engineering Review",
			Client:          "Acme Corp",
			PreparedBy:      "Example Partners",
			AssessmentDate:  "2025-06-01",
			Version:         "2.1",
		},
	}
	svc := NewSlideService(doc, zap.NewNop())

	intro := svc.Slides()[0].(models.BrandSlide)
	assert.Equal(t, "Acme Engineering Review", intro.Hero.Title)
	assert.Equal(t, "Prepared by Example Partners", intro.Hero.Kicker)

	labels := make([]string, len(intro.MetaDetails))
	for i, d := range intro.MetaDetails {
		labels[i] = d.Label
	}
	assert.Equal(t, []string{"Client", "Prepared by", "Date", "Version"}, labels)
}

func TestIntroSlideOmitsAbsentMetaDetails(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())
	intro := svc.Slides()[0].(models.BrandSlide)

	for _, d := range intro.MetaDetails {
		assert.NotEqual(t, "Date", d.Label)
		assert.NotEqual(t, "Version", d.Label)
	}
}

func TestSpaceSlideAggregates(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())

	slide, ok := svc.SlideByID("space-framework")
	require.True(t, ok)
	space := slide.(models.SpaceFrameworkSlide)

	// Fallback dimensions: (2.8+3.1+2.6+3.3+2.4)/5
	assert.Equal(t, 2.84, space.OverallScore)
	assert.Equal(t, 4.5, space.OverallTarget)
	assert.Len(t, space.Dimensions, 5)
}

func TestSpaceSlideAggregatesFromDocument(t *testing.T) {
	doc := &models.AssessmentDocument{
		Frameworks: models.Frameworks{
			Space: models.SpaceSection{Dimensions: []models.SpaceDimension{
				{ID: "a", Name: "A", CurrentScore: 3, TargetScore: 4},
				{ID: "b", Name: "B", CurrentScore: 4, TargetScore: 5},
			}},
		},
	}
	svc := NewSlideService(doc, zap.NewNop())

	slide, _ := svc.SlideByID("space-framework")
	space := slide.(models.SpaceFrameworkSlide)
	assert.Equal(t, 3.5, space.OverallScore)
	assert.Equal(t, 4.5, space.OverallTarget)
}

func TestSecurityPostureAggregates(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())

	slide, ok := svc.SlideByID("security-posture")
	require.True(t, ok)
	samm := slide.(models.SecurityPostureSlide)

	// Fallback practices: (0.8+0.5+1.2+0.9+1.0)/5 and (2.5+2.0+2.5+2.5+2.5)/5
	assert.Equal(t, 0.88, samm.OverallLevel)
	assert.Equal(t, 2.4, samm.OverallTarget)
	assert.Len(t, samm.Practices, 5)
}

func TestMetricDashboardInsights(t *testing.T) {
	doc := &models.AssessmentDocument{
		Frameworks: models.Frameworks{
			Dora: models.FrameworkSection{Metrics: []models.FrameworkMetric{
				{
					ID:                  "deployment_frequency",
					Name:                "Deployment Frequency",
					CurrentValue:        2,
					CurrentValueDisplay: "2x per month",
					BenchmarkValue:      "On-demand",
					PerformanceTier:     "Medium",
					GapAnalysis:         "Well below elite cadence.",
					Telemetry: &models.TelemetryData{
						Value:              1.6,
						ValueDisplay:       "1.6x per month",
						Source:             "CI/CD pipeline",
						MeasurementPeriod:  "Q1 2025",
						VarianceFromSurvey: -20,
					},
				},
			}},
		},
	}
	svc := NewSlideService(doc, zap.NewNop())

	slide, ok := svc.SlideByID("dora-metrics")
	require.True(t, ok)
	dashboard := slide.(models.MetricDashboardSlide)

	insights := dashboard.Info.Insights
	assert.Contains(t, insights, "**Deployment Frequency**")
	assert.Contains(t, insights, "Current: 2x per month | Benchmark: On-demand | Tier: Medium")
	assert.Contains(t, insights, "Gap Analysis: Well below elite cadence.")
	assert.Contains(t, insights, "Survey: 2x per month | Actual: 1.6x per month | Variance: -20%")
	assert.Contains(t, insights, "Source: CI/CD pipeline (Q1 2025)")
}

func TestSpaceInsightsNameExtremes(t *testing.T) {
	svc := NewSlideService(emptyDocument(), zap.NewNop())

	slide, _ := svc.SlideByID("space-framework")
	space := slide.(models.SpaceFrameworkSlide)

	header := strings.SplitN(space.Info.Insights, "\n\n---\n\n", 2)[0]
	assert.Contains(t, header, "Top gap: Efficiency & Flow")
	assert.Contains(t, header, "Immediate win: Communication & Collaboration")
}

func TestSplitParagraphs(t *testing.T) {
	assert.Equal(t, []string{"one", "two", "three"}, splitParagraphs("one\n\ntwo\nthree"))
	assert.Equal(t, []string{"only"}, splitParagraphs("only"))
	assert.Empty(t, splitParagraphs("\n\n  \n"))
}

func TestFormatGap(t *testing.T) {
	assert.Equal(t, "-1.7", formatGap(1.7))
	assert.Equal(t, "+0.0", formatGap(0))
	assert.Equal(t, "+0.0", formatGap(-0.3))
}

func TestFormatVariance(t *testing.T) {
	assert.Equal(t, "+12.5", formatVariance(12.5))
	assert.Equal(t, "-20", formatVariance(-20))
	assert.Equal(t, "0", formatVariance(0))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.84", formatNumber(2.84))
	assert.Equal(t, "4.5", formatNumber(4.5))
	assert.Equal(t, "12", formatNumber(12))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 2.84, round2(14.2/5))
	assert.Equal(t, 0.88, round2(4.4/5))
}
