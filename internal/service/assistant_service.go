package service

import (
	"context"
	"strings"

	"deck-assist/internal/models"
	"deck-assist/pkg/config"

	"go.uber.org/zap"
)

const defaultSystemPrompt = `You are an expert software engineering transformation assistant for Mag Tech AI.

Guidelines:
- Only answer questions related to the provided assessment data, engineering metrics, or SPACE/DORA/BlueOptima frameworks.
- If a question is outside that scope, respond that it is out of scope.
- Ground every answer strictly in the supplied context. Do not fabricate benchmarks, data, or recommendations.
- When unsure or context is insufficient, state the limitation and suggest referencing the assessment artifacts.`

const defaultContextPreface = `The following context is sourced from the engineering transformation assessment JSON. Use it to answer executive questions with precision.`

const emptyAnswerFallback = "I was unable to generate a response based on the current context."

// AssistantService orchestrates a single question: serialize the active
// slide, retrieve supporting chunks, assemble the grounded context, and
// forward everything to the gateway for completion. Gateway errors
// propagate unchanged; retries are a caller policy.
type AssistantService struct {
	knowledge *KnowledgeService
	retrieval *RetrievalService
	client    *InferenceClient
	cfg       *config.AssistantConfig
	logger    *zap.Logger
}

func NewAssistantService(
	knowledge *KnowledgeService,
	retrieval *RetrievalService,
	client *InferenceClient,
	cfg *config.AssistantConfig,
	logger *zap.Logger,
) *AssistantService {
	return &AssistantService{
		knowledge: knowledge,
		retrieval: retrieval,
		client:    client,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetAssistantAnswer answers a question about the active slide, returning
// the generated text together with the retrieved chunks as citations.
func (s *AssistantService) GetAssistantAnswer(
	ctx context.Context,
	question string,
	slide models.Slide,
	history []models.AssistantHistoryMessage,
) (*models.AssistantAnswer, error) {
	slideMarkdown := s.knowledge.SerializeSlideToMarkdown(slide)

	chunks, err := s.retrieval.FindRelevantChunks(ctx, question, slideMarkdown)
	if err != nil {
		return nil, err
	}

	// The active slide section always leads the context block, whatever
	// retrieval returned.
	sections := make([]string, 0, len(chunks)+1)
	sections = append(sections, "### Active Slide Context\n"+slideMarkdown)
	for _, chunk := range chunks {
		sections = append(sections, "### "+chunk.Title+"\n"+chunk.Content)
	}
	contextBlock := s.contextPreface() + "\n\n" + strings.Join(sections, chunkSeparator)

	window := models.TrimHistory(history, models.HistorySendLimit)

	answer, err := s.client.Complete(ctx, question, window, s.systemPrompt(), contextBlock)
	if err != nil {
		return nil, err
	}

	answer = strings.TrimSpace(sanitizeUTF8(answer))
	if answer == "" {
		answer = emptyAnswerFallback
	}

	s.logger.Info("Assistant answer generated",
		zap.String("slide_id", slide.SlideID()),
		zap.Int("citations", len(chunks)),
	)

	return &models.AssistantAnswer{
		Answer:    answer,
		Citations: chunks,
	}, nil
}

func (s *AssistantService) systemPrompt() string {
	if configured := strings.TrimSpace(s.cfg.SystemPrompt); configured != "" {
		return configured
	}
	return defaultSystemPrompt
}

func (s *AssistantService) contextPreface() string {
	if configured := strings.TrimSpace(s.cfg.ContextPreface); configured != "" {
		return configured
	}
	return defaultContextPreface
}
