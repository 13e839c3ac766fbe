package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"deck-assist/internal/dto"
	"deck-assist/internal/models"
	"deck-assist/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSlideApp(t *testing.T) *fiber.App {
	t.Helper()
	slides := service.NewSlideService(&models.AssessmentDocument{}, zap.NewNop())
	knowledge := service.NewKnowledgeService(slides.Slides(), zap.NewNop())
	handler := NewSlideHandler(slides, knowledge, zap.NewNop())

	app := fiber.New()
	app.Get("/api/v1/slides", handler.List)
	app.Get("/api/v1/slides/:id/markdown", handler.Markdown)
	app.Get("/api/v1/knowledge/chunks", handler.Chunks)
	app.Get("/api/v1/assessment/markdown", handler.AssessmentMarkdown)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
	return resp
}

func TestListSlides(t *testing.T) {
	app := newSlideApp(t)

	var body dto.SlideListResponse
	resp := getJSON(t, app, "/api/v1/slides", &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, body.Slides, 6)
	assert.Equal(t, "intro", body.Slides[0].ID)
	assert.Equal(t, "brand", body.Slides[0].Layout)
	assert.NotEmpty(t, body.Slides[0].Title)
}

func TestSlideMarkdown(t *testing.T) {
	app := newSlideApp(t)

	var body dto.SlideMarkdownResponse
	resp := getJSON(t, app, "/api/v1/slides/synopsis/markdown", &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "synopsis", body.ID)
	assert.Contains(t, body.Markdown, "## Assessment Synopsis")
	assert.Contains(t, body.Markdown, "### Strategic Pillars")
}

func TestSlideMarkdownUnknownSlide(t *testing.T) {
	app := newSlideApp(t)

	var body map[string]any
	resp := getJSON(t, app, "/api/v1/slides/missing/markdown", &body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Slide not found", body["error"])
}

func TestAssessmentMarkdown(t *testing.T) {
	app := newSlideApp(t)

	var body map[string]string
	resp := getJSON(t, app, "/api/v1/assessment/markdown", &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body["markdown"], "## Assessment Synopsis")
	assert.Contains(t, body["markdown"], "## Security Posture Assessment")
}

func TestKnowledgeChunks(t *testing.T) {
	app := newSlideApp(t)

	var body []models.KnowledgeChunk
	resp := getJSON(t, app, "/api/v1/knowledge/chunks", &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, body, 16)
	assert.Equal(t, "brand-overview", body[0].ID)
}
