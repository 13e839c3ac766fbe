package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"deck-assist/internal/models"

	"go.uber.org/zap"
)

const organisationFallback = "Mag Tech AI"

var fallbackPillars = []string{
	"Modernise the engineering engine via automated CI/CD and DevSecOps.",
	"Adopt an empowered product operating model with long-lived teams.",
	"Embed AI-assisted development and proactive security workflows.",
}

var fallbackFindings = []string{
	"Delivery velocity and stability trail elite benchmarks, slowing release cadence.",
	"Developer experience is constrained by tooling friction and fragmented automation.",
	"AI adoption and security governance require structured investment to scale responsibly.",
}

var fallbackSources = []models.SourceDocument{
	{Title: "DORA Metrics: Elite performance thresholds", URL: "https://getdx.com/blog/dora-metrics/"},
	{Title: "BlueOptima Global Drivers of Performance"},
	{Title: "SPACE Framework References", URL: "https://octopus.com/devops/metrics/space-framework/"},
}

// SlideService turns the assessment document into the deck's ordered
// slide sequence. Building is pure and deterministic; the Slides
// accessor memoizes the result for the process lifetime.
type SlideService struct {
	doc    *models.AssessmentDocument
	logger *zap.Logger

	once   sync.Once
	slides []models.Slide
	byID   map[string]models.Slide
}

func NewSlideService(doc *models.AssessmentDocument, logger *zap.Logger) *SlideService {
	return &SlideService{
		doc:    doc,
		logger: logger,
	}
}

// Slides returns the deck, built once and cached.
func (s *SlideService) Slides() []models.Slide {
	s.once.Do(func() {
		s.slides = s.BuildSlides()
		s.byID = make(map[string]models.Slide, len(s.slides))
		for _, slide := range s.slides {
			s.byID[slide.SlideID()] = slide
		}
		s.logger.Info("Slide deck built", zap.Int("slides", len(s.slides)))
	})
	return s.slides
}

// SlideByID looks up a slide in the cached deck.
func (s *SlideService) SlideByID(id string) (models.Slide, bool) {
	s.Slides()
	slide, ok := s.byID[id]
	return slide, ok
}

// BuildSlides derives the full deck from the document. Fallback content
// is applied wherever the document is sparse so the deck is always
// renderable. No I/O and no mutation of the input.
func (s *SlideService) BuildSlides() []models.Slide {
	organization := withFallback(s.doc.Metadata.Organization, organisationFallback)
	reportTitle := withFallback(s.doc.Metadata.AssessmentTitle, "Engineering Transformation Assessment")
	client := withFallback(s.doc.Metadata.Client, organization)
	preparedBy := withFallback(s.doc.Metadata.PreparedBy, organisationFallback)

	return []models.Slide{
		s.buildIntroSlide(organization, reportTitle, client, preparedBy),
		s.buildSynopsisSlide(client),
		s.buildMetricDashboardSlide(
			"dora",
			"dora-metrics",
			"DORA Metrics Dashboard",
			"System-level delivery performance vs. elite benchmarks",
			s.doc.Frameworks.Dora.Metrics,
			models.InfoBlock{
				Title:   "DORA Metrics Insights",
				Body:    "DORA (DevOps Research and Assessment) metrics measure software delivery performance across velocity and stability dimensions.",
				Utility: "These metrics predict organizational performance and identify bottlenecks in the delivery pipeline.",
			},
			"Elite performers deploy on-demand, with <1 day lead time, <15% failure rate, and <1 hour recovery time.",
		),
		s.buildMetricDashboardSlide(
			"blueoptima",
			"blueoptima-metrics",
			"BlueOptima Metrics Dashboard",
			"Developer-level productivity and code quality metrics",
			s.doc.Frameworks.BlueOptima.Metrics,
			models.InfoBlock{
				Title:   "BlueOptima Metrics Insights",
				Body:    "BlueOptima metrics measure individual developer productivity, code quality, and collaboration patterns.",
				Utility: "These metrics identify developer experience friction points and opportunities to improve team velocity.",
			},
			"Elite teams commit every 1-2 days, merge PRs within 7 days, and maintain <5% code aberrancy.",
		),
		s.buildSpaceSlide(),
		s.buildSecurityPostureSlide(),
	}
}

func (s *SlideService) buildIntroSlide(organization, reportTitle, client, preparedBy string) models.BrandSlide {
	meta := []models.MetaDetail{
		{Label: "Client", Value: client},
		{Label: "Prepared by", Value: preparedBy},
	}
	if s.doc.Metadata.AssessmentDate != "" {
		meta = append(meta, models.MetaDetail{Label: "Date", Value: s.doc.Metadata.AssessmentDate})
	}
	if s.doc.Metadata.Version != "" {
		meta = append(meta, models.MetaDetail{Label: "Version", Value: s.doc.Metadata.Version})
	}

	return models.BrandSlide{
		ID: "intro",
		Hero: models.HeroBlock{
			Kicker:  "Prepared by " + preparedBy,
			Title:   reportTitle,
			Tagline: "Engineering transformation insights for " + client,
		},
		MetaDetails: meta,
		Info: models.InfoBlock{
			Title: "What this slide shows",
			Body: fmt.Sprintf("Credits %s at %s and documents the %s produced for %s.",
				preparedBy, organization, strings.ToLower(reportTitle), client),
			Utility: "Provides immediate context on authorship, audience, and the assessment artefact.",
		},
		Benchmark: "Highlights the gap between current engineering posture and elite benchmarks referenced throughout the deck.",
	}
}

func (s *SlideService) buildSynopsisSlide(client string) models.SynopsisSlide {
	summary := s.doc.Overview.ExecutiveSummary
	if summary == "" {
		summary = fmt.Sprintf("%s assessed %s's engineering organisation, benchmarking delivery velocity, stability, and product practices against elite performers to surface transformation priorities.\n\nSurvey insights, stakeholder interviews, CI/CD telemetry, and security posture reviews were synthesised to diagnose systemic friction, quantify capability gaps, and shape the transformation roadmap.",
			organisationFallback, client)
	}

	pillars := s.doc.Overview.StrategicPillars
	if len(pillars) == 0 {
		pillars = fallbackPillars
	}
	findings := s.doc.Overview.KeyFindings
	if len(findings) == 0 {
		findings = fallbackFindings
	}
	sources := s.doc.Sources
	if len(sources) == 0 {
		sources = fallbackSources
	}

	return models.SynopsisSlide{
		ID:       "synopsis",
		Title:    "Assessment Synopsis",
		Subtitle: "Scope, data sources, and evaluation methodology",
		Synopsis: models.SynopsisBlock{
			Paragraphs: splitParagraphs(summary),
			Pillars:    pillars,
			Findings:   findings,
			Sources:    sources,
		},
		Info: models.InfoBlock{
			Title:   "What this slide shows",
			Body:    "Summarises the assessed dimensions, evidence base, and benchmark references shaping the transformation roadmap.",
			Utility: "Sets expectations for how subsequent slides interpret metrics against industry-leading performance tiers.",
		},
		Benchmark: "All metrics are benchmarked against elite performance targets across DORA, BlueOptima, SPACE, AI readiness, and security frameworks.",
	}
}

func (s *SlideService) buildMetricDashboardSlide(
	frameworkID, slideID, title, subtitle string,
	metrics []models.FrameworkMetric,
	info models.InfoBlock,
	benchmark string,
) models.MetricDashboardSlide {
	info.Insights = buildMetricInsights(metrics)
	return models.MetricDashboardSlide{
		ID:          slideID,
		FrameworkID: frameworkID,
		Title:       title,
		Subtitle:    subtitle,
		Metrics:     metrics,
		Info:        info,
		Benchmark:   benchmark,
	}
}

func (s *SlideService) buildSpaceSlide() models.SpaceFrameworkSlide {
	dimensions := s.doc.Frameworks.Space.Dimensions
	if len(dimensions) == 0 {
		dimensions = fallbackSpaceDimensions
	}

	var currentSum, targetSum float64
	for _, d := range dimensions {
		currentSum += d.CurrentScore
		targetSum += d.TargetScore
	}
	count := float64(len(dimensions))
	overallScore := round2(currentSum / count)
	overallTarget := round2(targetSum / count)

	return models.SpaceFrameworkSlide{
		ID:            "space-framework",
		Title:         "SPACE Framework Assessment",
		Subtitle:      "Developer experience and organizational health signals",
		Dimensions:    dimensions,
		OverallScore:  overallScore,
		OverallTarget: overallTarget,
		Info: models.InfoBlock{
			Title:    "What this slide shows",
			Body:     "Highlights SPACE dimensions (Satisfaction, Performance, Activity, Communication, Efficiency) with survey scores versus elite targets.",
			Utility:  "Connects developer experience sentiment to delivery performance and prioritizes interventions across people, process, and tooling.",
			Insights: buildSpaceInsights(dimensions, overallScore, overallTarget),
		},
		Benchmark: "Elite engineering organizations sustain SPACE scores of 4.5+ across all dimensions with minimal variance.",
	}
}

func (s *SlideService) buildSecurityPostureSlide() models.SecurityPostureSlide {
	practices := s.doc.Frameworks.Samm.Practices
	if len(practices) == 0 {
		practices = fallbackSammPractices
	}

	var currentSum, targetSum float64
	for _, p := range practices {
		currentSum += p.CurrentLevel
		targetSum += p.TargetLevel
	}
	count := float64(len(practices))
	overallLevel := round2(currentSum / count)
	overallTarget := round2(targetSum / count)

	return models.SecurityPostureSlide{
		ID:            "security-posture",
		Title:         "Security Posture Assessment",
		Subtitle:      "OWASP SAMM practice maturity vs. target state",
		Practices:     practices,
		OverallLevel:  overallLevel,
		OverallTarget: overallTarget,
		Info: models.InfoBlock{
			Title:    "What this slide shows",
			Body:     "Maps OWASP SAMM practice maturity across governance, design, implementation, verification, and operations.",
			Utility:  "Pinpoints where security investment closes the widest maturity gaps before scaling delivery velocity.",
			Insights: buildSammInsights(practices, overallLevel, overallTarget),
		},
		Benchmark: "Mature organizations sustain SAMM maturity of 2.5+ across all practices with continuous verification.",
	}
}

func buildMetricInsights(metrics []models.FrameworkMetric) string {
	blocks := make([]string, 0, len(metrics))
	for _, metric := range metrics {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\n", metric.Name)
		fmt.Fprintf(&b, "Current: %s | Benchmark: %s | Tier: %s\n\n",
			metricDisplayValue(metric), metric.BenchmarkValue, metric.PerformanceTier)
		fmt.Fprintf(&b, "Gap Analysis: %s", metric.GapAnalysis)

		if len(metric.Notes) > 0 {
			b.WriteString("\n\nNotes:\n")
			b.WriteString(bulletList(metric.Notes))
		}

		if t := metric.Telemetry; t != nil {
			fmt.Fprintf(&b, "\n\n**Telemetry vs Survey:**\nSurvey: %s | Actual: %s | Variance: %s%%\nSource: %s (%s)",
				metricDisplayValue(metric), telemetryDisplayValue(t), formatVariance(t.VarianceFromSurvey),
				t.Source, t.MeasurementPeriod)
			if t.Notes != "" {
				b.WriteString("\n" + t.Notes)
			}
		}

		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func buildSpaceInsights(dimensions []models.SpaceDimension, overallScore, overallTarget float64) string {
	overallGap := math.Round((overallTarget-overallScore)*10) / 10

	pressing := dimensions[0]
	strongest := dimensions[0]
	for _, d := range dimensions[1:] {
		if d.TargetScore-d.CurrentScore > pressing.TargetScore-pressing.CurrentScore {
			pressing = d
		}
		if d.TargetScore-d.CurrentScore < strongest.TargetScore-strongest.CurrentScore {
			strongest = d
		}
	}

	blocks := make([]string, 0, len(dimensions)+1)
	blocks = append(blocks, fmt.Sprintf("**SPACE Index**\nCurrent: %.1f / Target: %.1f | Gap: %s\nTop gap: %s | Immediate win: %s",
		overallScore, overallTarget, formatGap(overallGap), pressing.Name, strongest.Name))

	for _, d := range dimensions {
		gap := math.Round((d.TargetScore-d.CurrentScore)*10) / 10
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\nScore: %.1f / Target: %.1f | Gap: %s\n%s",
			d.Name, d.CurrentScore, d.TargetScore, formatGap(gap), d.Definition)
		if len(d.SupportingSignals) > 0 {
			b.WriteString("\n\nSignals:\n")
			b.WriteString(bulletList(d.SupportingSignals))
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n---\n\n")
}

func buildSammInsights(practices []models.SammPractice, overallLevel, overallTarget float64) string {
	overallGap := math.Round((overallTarget-overallLevel)*10) / 10

	blocks := make([]string, 0, len(practices)+1)
	blocks = append(blocks, fmt.Sprintf("**SAMM Maturity Index**\nCurrent: %.1f / Target: %.1f | Gap: %s",
		overallLevel, overallTarget, formatGap(overallGap)))

	for _, p := range practices {
		gap := math.Round((p.TargetLevel-p.CurrentLevel)*10) / 10
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\nMaturity: %.1f / Target: %.1f | Gap: %s\n%s",
			p.Name, p.CurrentLevel, p.TargetLevel, formatGap(gap), p.Description)
		if len(p.Observations) > 0 {
			b.WriteString("\n\nObservations:\n")
			b.WriteString(bulletList(p.Observations))
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n---\n\n")
}

var paragraphSplitter = regexp.MustCompile(`\n{2,}|\r?\n`)

// splitParagraphs breaks summary text on newline runs, dropping blanks.
func splitParagraphs(text string) []string {
	parts := paragraphSplitter.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}

func metricDisplayValue(metric models.FrameworkMetric) string {
	if metric.CurrentValueDisplay != "" {
		return metric.CurrentValueDisplay
	}
	return formatNumber(metric.CurrentValue)
}

func telemetryDisplayValue(t *models.TelemetryData) string {
	if t.ValueDisplay != "" {
		return t.ValueDisplay
	}
	return formatNumber(t.Value)
}

// formatGap reports a shortfall as "-x.y"; met-or-exceeded targets are
// clamped and reported as "+0.0".
func formatGap(gap float64) string {
	if gap > 0 {
		return fmt.Sprintf("-%.1f", gap)
	}
	return "+0.0"
}

// formatVariance keeps an explicit sign on positive variances.
func formatVariance(variance float64) string {
	if variance > 0 {
		return "+" + formatNumber(variance)
	}
	return formatNumber(variance)
}

func formatNumber(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func withFallback(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
