package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"deck-assist/internal/models"
	"deck-assist/pkg/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrMissingConfiguration is returned before any remote call is
// attempted when the deployment settings are incomplete. The message is
// part of the gateway's wire contract and must not change.
var ErrMissingConfiguration = errors.New("Missing Azure OpenAI configuration. Set AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_CHAT_DEPLOYMENT, and AZURE_OPENAI_EMBEDDING_DEPLOYMENT.")

// AzureOpenAIService is the gateway's backing implementation: a single
// credentialed Azure OpenAI client, constructed lazily on first use and
// cached for the process lifetime. The service holds no per-request
// state; callers resend the full history every time.
type AzureOpenAIService struct {
	cfg    *config.AzureOpenAIConfig
	logger *zap.Logger

	clientOnce sync.Once
	client     *openai.Client
	clientErr  error
}

func NewAzureOpenAIService(cfg *config.AzureOpenAIConfig, logger *zap.Logger) *AzureOpenAIService {
	return &AzureOpenAIService{
		cfg:    cfg,
		logger: logger,
	}
}

func (s *AzureOpenAIService) getClient() (*openai.Client, error) {
	s.clientOnce.Do(func() {
		if s.cfg.Endpoint == "" || s.cfg.ChatDeployment == "" || s.cfg.EmbeddingDeployment == "" {
			s.clientErr = ErrMissingConfiguration
			return
		}

		clientCfg := openai.DefaultAzureConfig(s.cfg.APIKey, s.cfg.Endpoint)
		clientCfg.APIVersion = s.cfg.APIVersion
		// Deployment names are passed through as-is; the caller already
		// configures them per operation.
		clientCfg.AzureModelMapperFunc = func(model string) string { return model }

		s.client = openai.NewClientWithConfig(clientCfg)
		s.logger.Info("Azure OpenAI client initialized",
			zap.String("endpoint", s.cfg.Endpoint),
			zap.String("api_version", s.cfg.APIVersion),
		)
	})
	return s.client, s.clientErr
}

// EmbedTexts returns one embedding vector per input, order-preserving.
func (s *AzureOpenAIService) EmbedTexts(ctx context.Context, inputs []string) ([][]float64, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}

	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: inputs,
		Model: openai.EmbeddingModel(s.cfg.EmbeddingDeployment),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	vectors := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		vector := make([]float64, len(item.Embedding))
		for j, v := range item.Embedding {
			vector[j] = float64(v)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// Chat issues a completion over the system prompt, the context block,
// the resent history window, and the user question, in that order.
func (s *AzureOpenAIService) Chat(
	ctx context.Context,
	question string,
	history []models.AssistantHistoryMessage,
	systemPrompt, contextSections string,
) (string, openai.Usage, error) {
	client, err := s.getClient()
	if err != nil {
		return "", openai.Usage{}, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+3)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	if contextSections != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: contextSections,
		})
	}
	for _, m := range history {
		if m.Role == "" || strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.cfg.ChatDeployment,
		Messages: messages,
	})
	if err != nil {
		return "", openai.Usage{}, fmt.Errorf("chat completion request failed: %w", err)
	}

	answer := ""
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}
	return answer, resp.Usage, nil
}
