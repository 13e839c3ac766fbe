package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"deck-assist/internal/api"
	"deck-assist/internal/api/handlers"
	"deck-assist/internal/repository"
	"deck-assist/internal/service"
	"deck-assist/pkg/config"
	"deck-assist/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting deck-assist service")

	// Load the assessment document
	assessmentRepo := repository.NewAssessmentRepository(cfg.Assessment.DocumentPath, appLogger)
	doc, err := assessmentRepo.Load()
	if err != nil {
		appLogger.Fatal("Failed to load assessment document", zap.Error(err))
	}

	// Initialize services
	slideService := service.NewSlideService(doc, appLogger)
	knowledgeService := service.NewKnowledgeService(slideService.Slides(), appLogger)

	azureService := service.NewAzureOpenAIService(&cfg.AzureOpenAI, appLogger)

	ownOrigin := "http://localhost:" + cfg.Server.Port
	gatewayBaseURL := service.ResolveGatewayBaseURL(&cfg.Assistant, cfg.Server.Environment, ownOrigin)
	appLogger.Info("Inference gateway resolved", zap.String("base_url", gatewayBaseURL))

	inferenceClient := service.NewInferenceClient(gatewayBaseURL, appLogger)
	retrievalService := service.NewRetrievalService(inferenceClient, knowledgeService, appLogger)
	assistantService := service.NewAssistantService(knowledgeService, retrievalService, inferenceClient, &cfg.Assistant, appLogger)

	// Initialize handlers
	assistantHandler := handlers.NewAssistantHandler(assistantService, slideService, appLogger)
	slideHandler := handlers.NewSlideHandler(slideService, knowledgeService, appLogger)
	inferenceHandler := handlers.NewInferenceHandler(azureService, appLogger)

	// Setup router
	app := api.SetupRouter(assistantHandler, slideHandler, inferenceHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
