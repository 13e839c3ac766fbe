package handlers

import (
	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SlideHandler struct {
	slides    *service.SlideService
	knowledge *service.KnowledgeService
	logger    *zap.Logger
}

func NewSlideHandler(slides *service.SlideService, knowledge *service.KnowledgeService, logger *zap.Logger) *SlideHandler {
	return &SlideHandler{
		slides:    slides,
		knowledge: knowledge,
		logger:    logger,
	}
}

// List returns the deck as ordered slide summaries.
func (h *SlideHandler) List(c *fiber.Ctx) error {
	deck := h.slides.Slides()
	summaries := make([]dto.SlideSummary, len(deck))
	for i, slide := range deck {
		summaries[i] = dto.SlideSummary{
			ID:     slide.SlideID(),
			Layout: string(slide.SlideLayout()),
			Title:  slideTitle(slide),
		}
	}
	return c.JSON(dto.SlideListResponse{Slides: summaries})
}

// Markdown renders one slide as the serialized text the assistant uses
// for grounding.
func (h *SlideHandler) Markdown(c *fiber.Ctx) error {
	id := c.Params("id")
	slide, ok := h.slides.SlideByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Slide not found",
		})
	}
	return c.JSON(dto.SlideMarkdownResponse{
		ID:       id,
		Markdown: h.knowledge.SerializeSlideToMarkdown(slide),
	})
}

// Chunks exposes the indexed knowledge base.
func (h *SlideHandler) Chunks(c *fiber.Ctx) error {
	return c.JSON(h.knowledge.GetKnowledgeChunks())
}

// AssessmentMarkdown renders the whole deck as one document.
func (h *SlideHandler) AssessmentMarkdown(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"markdown": h.knowledge.AssessmentMarkdown()})
}

func slideTitle(slide models.Slide) string {
	switch v := slide.(type) {
	case models.BrandSlide:
		return v.Hero.Title
	case models.SynopsisSlide:
		return v.Title
	case models.MetricDashboardSlide:
		return v.Title
	case models.SpaceFrameworkSlide:
		return v.Title
	case models.SecurityPostureSlide:
		return v.Title
	default:
		return slide.SlideID()
	}
}
