package handlers

import (
	"strings"

	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	assistant *service.AssistantService
	slides    *service.SlideService
	logger    *zap.Logger
}

func NewAssistantHandler(assistant *service.AssistantService, slides *service.SlideService, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		slides:    slides,
		logger:    logger,
	}
}

// Ask answers a question about the active slide. The history the caller
// resends is bounded before use; older turns are silently dropped.
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Question is required",
		})
	}
	if req.SlideID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Slide id is required",
		})
	}

	slide, ok := h.slides.SlideByID(req.SlideID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Slide not found",
		})
	}

	history := make([]models.AssistantHistoryMessage, 0, len(req.History))
	for _, m := range req.History {
		if m.Role == "" || strings.TrimSpace(m.Content) == "" {
			continue
		}
		history = append(history, models.AssistantHistoryMessage{Role: m.Role, Content: m.Content})
	}
	history = models.TrimHistory(history, models.HistoryRetainLimit)

	answer, err := h.assistant.GetAssistantAnswer(c.Context(), question, slide, history)
	if err != nil {
		h.logger.Error("Assistant request failed",
			zap.String("slide_id", req.SlideID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	citations := make([]dto.CitationResponse, len(answer.Citations))
	for i, chunk := range answer.Citations {
		citations[i] = dto.CitationResponse{
			ID:    chunk.ID,
			Title: chunk.Title,
			Tags:  chunk.Tags,
		}
	}

	return c.JSON(dto.AskResponse{
		Answer:    answer.Answer,
		Citations: citations,
	})
}
