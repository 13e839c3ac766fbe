package api

import (
	"deck-assist/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	assistantHandler *handlers.AssistantHandler,
	slideHandler *handlers.SlideHandler,
	inferenceHandler *handlers.InferenceHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Inference gateway endpoint. The path is part of the client
	// contract, so it stays outside the versioned group.
	app.Post("/api/azure-openai", inferenceHandler.Proxy)

	// API routes
	v1 := app.Group("/api/v1")

	v1.Post("/assistant/ask", assistantHandler.Ask)

	slides := v1.Group("/slides")
	slides.Get("", slideHandler.List)
	slides.Get("/:id/markdown", slideHandler.Markdown)

	v1.Get("/knowledge/chunks", slideHandler.Chunks)
	v1.Get("/assessment/markdown", slideHandler.AssessmentMarkdown)

	appLogger.Info("Router configured")
	return app
}
