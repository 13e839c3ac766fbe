package service

import (
	"fmt"
	"strings"
	"sync"

	"deck-assist/internal/models"

	"go.uber.org/zap"
)

const chunkSeparator = "\n\n---\n\n"

// KnowledgeService flattens the slide deck into discrete, citable
// knowledge chunks and renders individual slides as markdown-ish text.
// Chunks are built once per process; the deck does not change after
// startup.
type KnowledgeService struct {
	slides []models.Slide
	logger *zap.Logger

	chunksOnce sync.Once
	chunks     []models.KnowledgeChunk

	markdownOnce sync.Once
	markdown     string
}

func NewKnowledgeService(slides []models.Slide, logger *zap.Logger) *KnowledgeService {
	return &KnowledgeService{
		slides: slides,
		logger: logger,
	}
}

// GetKnowledgeChunks returns the flattened knowledge base: one summary
// chunk per slide plus one detail chunk per metric, dimension, and
// practice. The result is memoized; repeat calls return the same slice.
func (s *KnowledgeService) GetKnowledgeChunks() []models.KnowledgeChunk {
	s.chunksOnce.Do(func() {
		s.chunks = s.buildChunks()
		s.logger.Info("Knowledge base indexed", zap.Int("chunks", len(s.chunks)))
	})
	return s.chunks
}

// AssessmentMarkdown renders the whole deck as one markdown document.
func (s *KnowledgeService) AssessmentMarkdown() string {
	s.markdownOnce.Do(func() {
		sections := make([]string, len(s.slides))
		for i, slide := range s.slides {
			sections[i] = s.SerializeSlideToMarkdown(slide)
		}
		s.markdown = strings.Join(sections, chunkSeparator)
	})
	return s.markdown
}

// SerializeSlideToMarkdown renders one slide as a self-contained text
// block. Absent optional fields contribute nothing: no blank lines, no
// stray headers.
func (s *KnowledgeService) SerializeSlideToMarkdown(slide models.Slide) string {
	switch v := slide.(type) {
	case models.BrandSlide:
		head := "## " + v.Hero.Title
		if v.Hero.Tagline != "" {
			head += "\n" + v.Hero.Tagline
		}
		lines := make([]string, len(v.MetaDetails))
		for i, detail := range v.MetaDetails {
			lines[i] = fmt.Sprintf("- %s: %s", detail.Label, detail.Value)
		}
		return joinSections("\n\n", head, strings.Join(lines, "\n"))

	case models.SynopsisSlide:
		sections := []string{
			"## " + v.Title,
			v.Subtitle,
			strings.Join(v.Synopsis.Paragraphs, "\n\n"),
		}
		if len(v.Synopsis.Pillars) > 0 {
			sections = append(sections, "### Strategic Pillars", dashList(v.Synopsis.Pillars))
		}
		return joinSections("\n\n", sections...)

	case models.MetricDashboardSlide:
		blocks := make([]string, 0, len(v.Metrics))
		for _, metric := range v.Metrics {
			telemetry := ""
			if t := metric.Telemetry; t != nil {
				telemetry = fmt.Sprintf("Telemetry %s from %s (%s)",
					telemetryDisplayValue(t), t.Source, t.MeasurementPeriod)
			}
			blocks = append(blocks, joinSections("\n",
				"### "+metric.Name,
				labeled("Definition", metric.Definition),
				"Current: "+metricDisplayValue(metric),
				labeled("Benchmark", metric.BenchmarkValue),
				labeled("Tier", metric.PerformanceTier),
				labeled("Gap Analysis", metric.GapAnalysis),
				telemetry,
			))
		}
		return joinSections("\n\n",
			"## "+v.Title,
			v.Subtitle,
			v.Info.Body,
			v.Info.Insights,
			strings.Join(blocks, "\n\n"),
		)

	case models.SpaceFrameworkSlide:
		blocks := make([]string, 0, len(v.Dimensions))
		for _, d := range v.Dimensions {
			signals := ""
			if len(d.SupportingSignals) > 0 {
				signals = "Signals:\n" + bulletList(d.SupportingSignals)
			}
			blocks = append(blocks, joinSections("\n",
				"### "+d.Name,
				labeled("Definition", d.Definition),
				fmt.Sprintf("Survey: %.1f / Target: %.1f", d.CurrentScore, d.TargetScore),
				signals,
			))
		}
		return joinSections("\n\n",
			"## "+v.Title,
			v.Subtitle,
			fmt.Sprintf("Overall: %.1f / Target %.1f", v.OverallScore, v.OverallTarget),
			v.Info.Body,
			v.Info.Utility,
			strings.Join(blocks, "\n\n"),
		)

	case models.SecurityPostureSlide:
		blocks := make([]string, 0, len(v.Practices))
		for _, p := range v.Practices {
			observations := ""
			if len(p.Observations) > 0 {
				observations = "Observations:\n" + bulletList(p.Observations)
			}
			blocks = append(blocks, joinSections("\n",
				"### "+p.Name,
				labeled("Domain", p.Domain),
				labeled("Description", p.Description),
				fmt.Sprintf("Maturity: %.1f / Target: %.1f", p.CurrentLevel, p.TargetLevel),
				observations,
			))
		}
		return joinSections("\n\n",
			"## "+v.Title,
			v.Subtitle,
			fmt.Sprintf("Overall Maturity: %.1f / Target %.1f", v.OverallLevel, v.OverallTarget),
			v.Info.Body,
			v.Info.Utility,
			strings.Join(blocks, "\n\n"),
		)

	default:
		panic(fmt.Sprintf("knowledge: unhandled slide layout %q", slide.SlideLayout()))
	}
}

func (s *KnowledgeService) buildChunks() []models.KnowledgeChunk {
	var chunks []models.KnowledgeChunk

	for _, slide := range s.slides {
		switch v := slide.(type) {
		case models.BrandSlide:
			chunks = append(chunks, buildBrandChunk(v))
		case models.SynopsisSlide:
			chunks = append(chunks, buildSynopsisChunk(v))
		case models.MetricDashboardSlide:
			chunks = append(chunks, buildDashboardSummaryChunk(v))
			for _, metric := range v.Metrics {
				chunks = append(chunks, buildMetricChunk(v, metric))
			}
		case models.SpaceFrameworkSlide:
			chunks = append(chunks, buildSpaceSummaryChunk(v))
			for _, dimension := range v.Dimensions {
				chunks = append(chunks, buildDimensionChunk(v, dimension))
			}
		case models.SecurityPostureSlide:
			chunks = append(chunks, buildSammSummaryChunk(v))
			for _, practice := range v.Practices {
				chunks = append(chunks, buildPracticeChunk(v, practice))
			}
		default:
			panic(fmt.Sprintf("knowledge: unhandled slide layout %q", slide.SlideLayout()))
		}
	}

	return chunks
}

func buildBrandChunk(slide models.BrandSlide) models.KnowledgeChunk {
	lines := make([]string, len(slide.MetaDetails))
	for i, detail := range slide.MetaDetails {
		lines[i] = detail.Label + ": " + detail.Value
	}
	content := joinSections("\n\n",
		"Title: "+slide.Hero.Title,
		slide.Hero.Tagline,
		slide.Info.Body,
		slide.Info.Utility,
		strings.Join(lines, "\n"),
	)
	return models.KnowledgeChunk{
		ID:      "brand-overview",
		Title:   "Deck Overview",
		Content: content,
		Tags:    []string{"overview"},
	}
}

func buildSynopsisChunk(slide models.SynopsisSlide) models.KnowledgeChunk {
	content := joinSections("\n\n",
		slide.Title,
		slide.Subtitle,
		strings.Join(slide.Synopsis.Paragraphs, "\n\n"),
		"Key Findings:",
		bulletList(slide.Synopsis.Findings),
		"Strategic Pillars:",
		bulletList(slide.Synopsis.Pillars),
	)
	return models.KnowledgeChunk{
		ID:      "synopsis-summary",
		Title:   "Assessment Synopsis",
		Content: content,
		Tags:    []string{"executive-summary"},
	}
}

func buildDashboardSummaryChunk(slide models.MetricDashboardSlide) models.KnowledgeChunk {
	content := joinSections("\n\n",
		slide.Title,
		slide.Subtitle,
		slide.Info.Body,
		slide.Info.Utility,
		slide.Info.Insights,
	)
	return models.KnowledgeChunk{
		ID:      slide.ID + "-summary",
		Title:   slide.Title + " Summary",
		Content: content,
		Tags:    []string{"metric-summary", slide.ID},
	}
}

func buildMetricChunk(slide models.MetricDashboardSlide, metric models.FrameworkMetric) models.KnowledgeChunk {
	telemetry := ""
	if t := metric.Telemetry; t != nil {
		telemetry = fmt.Sprintf("Telemetry: %s (%s, %s) | Variance: %s",
			telemetryDisplayValue(t), t.Source, t.MeasurementPeriod, formatNumber(t.VarianceFromSurvey))
	}
	notes := ""
	if len(metric.Notes) > 0 {
		notes = "Notes:\n" + bulletList(metric.Notes)
	}
	content := joinSections("\n",
		slide.Title+" – "+metric.Name,
		labeled("Category", metric.Category),
		labeled("Definition", metric.Definition),
		"Current: "+metricDisplayValue(metric),
		labeled("Benchmark", metric.BenchmarkValue),
		labeled("Performance Tier", metric.PerformanceTier),
		labeled("Gap Analysis", metric.GapAnalysis),
		telemetry,
		notes,
	)
	return models.KnowledgeChunk{
		ID:      slide.ID + "-" + metric.ID,
		Title:   metric.Name + " Metric Details",
		Content: content,
		Tags:    []string{"metric", slide.ID, metric.ID},
	}
}

func buildSpaceSummaryChunk(slide models.SpaceFrameworkSlide) models.KnowledgeChunk {
	content := joinSections("\n\n",
		slide.Title,
		slide.Subtitle,
		fmt.Sprintf("Overall Score: %.1f", slide.OverallScore),
		fmt.Sprintf("Overall Target: %.1f", slide.OverallTarget),
		slide.Info.Body,
		slide.Info.Utility,
		slide.Info.Insights,
	)
	return models.KnowledgeChunk{
		ID:      "space-summary",
		Title:   "SPACE Framework Summary",
		Content: content,
		Tags:    []string{"space", "summary"},
	}
}

func buildDimensionChunk(slide models.SpaceFrameworkSlide, dimension models.SpaceDimension) models.KnowledgeChunk {
	signals := ""
	if len(dimension.SupportingSignals) > 0 {
		signals = "Signals:\n" + bulletList(dimension.SupportingSignals)
	}
	content := joinSections("\n",
		slide.Title+" – "+dimension.Name,
		labeled("Definition", dimension.Definition),
		labeled("Survey Question", dimension.SurveyQuestion),
		labeled("Scale", dimension.Scale),
		fmt.Sprintf("Current Score: %.1f", dimension.CurrentScore),
		fmt.Sprintf("Target Score: %.1f", dimension.TargetScore),
		labeled("Industry Target", dimension.IndustryTarget),
		signals,
	)
	return models.KnowledgeChunk{
		ID:      "space-" + dimension.ID,
		Title:   dimension.Name + " Dimension",
		Content: content,
		Tags:    []string{"space", dimension.ID},
	}
}

func buildSammSummaryChunk(slide models.SecurityPostureSlide) models.KnowledgeChunk {
	content := joinSections("\n\n",
		slide.Title,
		slide.Subtitle,
		fmt.Sprintf("Overall Maturity: %.1f", slide.OverallLevel),
		fmt.Sprintf("Overall Target: %.1f", slide.OverallTarget),
		slide.Info.Body,
		slide.Info.Utility,
		slide.Info.Insights,
	)
	return models.KnowledgeChunk{
		ID:      "samm-summary",
		Title:   "Security Posture Summary",
		Content: content,
		Tags:    []string{"samm", "summary"},
	}
}

func buildPracticeChunk(slide models.SecurityPostureSlide, practice models.SammPractice) models.KnowledgeChunk {
	observations := ""
	if len(practice.Observations) > 0 {
		observations = "Observations:\n" + bulletList(practice.Observations)
	}
	content := joinSections("\n",
		slide.Title+" – "+practice.Name,
		labeled("Domain", practice.Domain),
		labeled("Description", practice.Description),
		fmt.Sprintf("Current Level: %.1f", practice.CurrentLevel),
		fmt.Sprintf("Target Level: %.1f", practice.TargetLevel),
		observations,
	)
	return models.KnowledgeChunk{
		ID:      "samm-" + practice.ID,
		Title:   practice.Name + " Practice Details",
		Content: content,
		Tags:    []string{"samm", practice.ID},
	}
}

// joinSections joins the non-blank sections with the separator. A field
// contributes a section only when it is non-empty after trimming, which
// keeps absent optional data from producing blank lines.
func joinSections(separator string, sections ...string) string {
	kept := make([]string, 0, len(sections))
	for _, section := range sections {
		if strings.TrimSpace(section) != "" {
			kept = append(kept, section)
		}
	}
	return strings.Join(kept, separator)
}

// labeled renders a "Label: value" line, or nothing when the value is
// blank, so optional fields never leave a dangling label behind.
func labeled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}

func dashList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
