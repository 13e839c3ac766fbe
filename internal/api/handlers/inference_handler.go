package handlers

import (
	"strings"

	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InferenceHandler struct {
	azure  *service.AzureOpenAIService
	logger *zap.Logger
}

func NewInferenceHandler(azure *service.AzureOpenAIService, logger *zap.Logger) *InferenceHandler {
	return &InferenceHandler{
		azure:  azure,
		logger: logger,
	}
}

// Proxy is the single inference gateway endpoint. Mode "embedding"
// returns vectors for the input batch; any other mode is treated as a
// chat completion.
func (h *InferenceHandler) Proxy(c *fiber.Ctx) error {
	requestID := uuid.NewString()

	var req dto.GatewayRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	if req.Mode == "embedding" {
		return h.embed(c, requestID, req)
	}
	return h.chat(c, requestID, req)
}

func (h *InferenceHandler) embed(c *fiber.Ctx, requestID string, req dto.GatewayRequest) error {
	inputs := req.Input
	if len(inputs) == 0 && strings.TrimSpace(req.Question) != "" {
		inputs = []string{req.Question}
	}
	if len(inputs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Embedding requests must include a non-empty `input` array.",
		})
	}

	vectors, err := h.azure.EmbedTexts(c.Context(), inputs)
	if err != nil {
		h.logger.Error("Embedding request failed",
			zap.String("request_id", requestID),
			zap.Int("inputs", len(inputs)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	data := make([]dto.EmbeddingData, len(vectors))
	for i, vector := range vectors {
		data[i] = dto.EmbeddingData{Embedding: vector}
	}
	return c.JSON(dto.EmbeddingResponse{Data: data})
}

func (h *InferenceHandler) chat(c *fiber.Ctx, requestID string, req dto.GatewayRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Request must include a `question` string when requesting chat completions.",
		})
	}

	history := make([]models.AssistantHistoryMessage, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, models.AssistantHistoryMessage{Role: m.Role, Content: m.Content})
	}

	answer, usage, err := h.azure.Chat(c.Context(), req.Question, history, req.SystemPrompt, req.ContextSections)
	if err != nil {
		h.logger.Error("Chat completion failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp := dto.ChatResponse{Answer: answer}
	if usage.TotalTokens > 0 {
		resp.Usage = &dto.Usage{
			PromptTokens:     usage.PromptTokens,
			CompletionTokens: usage.CompletionTokens,
			TotalTokens:      usage.TotalTokens,
		}
	}
	return c.JSON(resp)
}
