package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/pkg/config"

	"go.uber.org/zap"
)

const gatewayPath = "/api/azure-openai"

// InferenceClient is the caller side of the inference gateway: it
// forwards embedding and chat requests over the single POST endpoint
// and surfaces the gateway's structured error messages verbatim.
type InferenceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewInferenceClient(baseURL string, logger *zap.Logger) *InferenceClient {
	return &InferenceClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// ResolveGatewayBaseURL picks the gateway address: an explicit override
// wins, a development posture falls back to the local functions host,
// and everything else targets the service's own origin.
func ResolveGatewayBaseURL(cfg *config.AssistantConfig, environment, ownOrigin string) string {
	if override := strings.TrimSpace(cfg.APIBaseURL); override != "" {
		return strings.TrimSuffix(override, "/")
	}
	if environment == "development" {
		host := strings.TrimSpace(cfg.FunctionsHost)
		if host == "" {
			host = "http://localhost:7071"
		}
		return strings.TrimSuffix(host, "/")
	}
	return strings.TrimSuffix(ownOrigin, "/")
}

// Embed returns one vector per input text, order-preserving.
func (c *InferenceClient) Embed(ctx context.Context, inputs []string) ([][]float64, error) {
	var resp dto.EmbeddingResponse
	if err := c.call(ctx, dto.GatewayRequest{Mode: "embedding", Input: inputs}, &resp); err != nil {
		return nil, err
	}
	vectors := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		vectors[i] = item.Embedding
	}
	return vectors, nil
}

// Complete issues a chat completion carrying the question, the history
// window, the system prompt, and the assembled context block.
func (c *InferenceClient) Complete(
	ctx context.Context,
	question string,
	history []models.AssistantHistoryMessage,
	systemPrompt, contextSections string,
) (string, error) {
	messages := make([]dto.HistoryMessage, len(history))
	for i, m := range history {
		messages[i] = dto.HistoryMessage{Role: m.Role, Content: m.Content}
	}

	var resp dto.ChatResponse
	err := c.call(ctx, dto.GatewayRequest{
		Question:        question,
		History:         messages,
		SystemPrompt:    systemPrompt,
		ContextSections: contextSections,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// call posts the payload and decodes the response. Gateway failures are
// returned with the gateway's own error message so callers can present
// it unchanged; non-JSON and empty bodies become descriptive errors
// carrying the raw status and body for diagnosis.
func (c *InferenceClient) call(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+gatewayPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach inference gateway: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	if len(raw) > 0 && !json.Valid(raw) {
		return fmt.Errorf("inference gateway returned non-JSON response (%d): %s", resp.StatusCode, raw)
	}
	if len(raw) == 0 && ok {
		return fmt.Errorf("inference gateway returned empty response with status %d", resp.StatusCode)
	}

	if !ok {
		var structured struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &structured)
		message := structured.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		if message == "" {
			message = "inference gateway request failed"
		}
		c.logger.Warn("Inference gateway request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("error", message),
		)
		return errors.New(message)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}
	return nil
}
