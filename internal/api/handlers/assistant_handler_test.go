package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/internal/service"
	"deck-assist/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newAssistantApp wires the full ask pipeline against a fake gateway
// that answers every embedding with a unit vector and every chat with a
// fixed reply.
func newAssistantApp(t *testing.T, chatStatus int, chatBody string) *fiber.App {
	t.Helper()
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.GatewayRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Mode == "embedding" {
			data := make([]dto.EmbeddingData, len(req.Input))
			for i := range req.Input {
				data[i] = dto.EmbeddingData{Embedding: []float64{1}}
			}
			json.NewEncoder(w).Encode(dto.EmbeddingResponse{Data: data})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(chatStatus)
		w.Write([]byte(chatBody))
	}))
	t.Cleanup(gateway.Close)

	logger := zap.NewNop()
	slides := service.NewSlideService(&models.AssessmentDocument{}, logger)
	knowledge := service.NewKnowledgeService(slides.Slides(), logger)
	client := service.NewInferenceClient(gateway.URL, logger)
	retrieval := service.NewRetrievalService(client, knowledge, logger)
	assistant := service.NewAssistantService(knowledge, retrieval, client, &config.AssistantConfig{}, logger)
	handler := NewAssistantHandler(assistant, slides, logger)

	app := fiber.New()
	app.Post("/api/v1/assistant/ask", handler.Ask)
	return app
}

func TestAskReturnsAnswerWithCitations(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "The deck covers six slides."}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask",
		`{"question": "What does this deck cover?", "slide_id": "intro"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "The deck covers six slides.", body["answer"])

	citations, ok := body["citations"].([]any)
	require.True(t, ok)
	assert.Len(t, citations, 4)
}

func TestAskRequiresQuestion(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "unused"}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{"slide_id": "intro", "question": "   "}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Question is required", body["error"])
}

func TestAskRequiresSlideID(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "unused"}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{"question": "Anything?"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Slide id is required", body["error"])
}

func TestAskUnknownSlide(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "unused"}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{"question": "Anything?", "slide_id": "missing"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Slide not found", body["error"])
}

func TestAskInvalidBody(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "unused"}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid request body", body["error"])
}

func TestAskSurfacesGatewayErrorVerbatim(t *testing.T) {
	message := service.ErrMissingConfiguration.Error()
	app := newAssistantApp(t, http.StatusInternalServerError, `{"error": "`+message+`"}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{"question": "Anything?", "slide_id": "intro"}`)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, message, body["error"])
}

func TestAskBlankAnswerFallsBack(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "  \n  "}`)

	resp, body := postJSON(t, app, "/api/v1/assistant/ask", `{"question": "Anything?", "slide_id": "intro"}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "I was unable to generate a response based on the current context.", body["answer"])
}

func TestAskDropsBlankHistoryTurns(t *testing.T) {
	app := newAssistantApp(t, http.StatusOK, `{"answer": "ok"}`)

	history := `[{"role": "user", "content": "kept"}, {"role": "", "content": "dropped"}, {"role": "user", "content": "  "}]`

	resp, _ := postJSON(t, app, "/api/v1/assistant/ask",
		`{"question": "Anything?", "slide_id": "intro", "history": `+history+`}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
