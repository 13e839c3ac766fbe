package main

import (
	"fmt"
	"log"
	"strings"

	"deck-assist/internal/repository"
	"deck-assist/internal/service"
	"deck-assist/pkg/config"
	"deck-assist/pkg/logger"

	"go.uber.org/zap"
)

// kbdump prints the indexed knowledge base to stdout so the chunking
// can be inspected without starting the server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	assessmentRepo := repository.NewAssessmentRepository(cfg.Assessment.DocumentPath, appLogger)
	doc, err := assessmentRepo.Load()
	if err != nil {
		appLogger.Fatal("Failed to load assessment document", zap.Error(err))
	}

	slideService := service.NewSlideService(doc, appLogger)
	knowledgeService := service.NewKnowledgeService(slideService.Slides(), appLogger)

	chunks := knowledgeService.GetKnowledgeChunks()
	appLogger.Info("Knowledge base built", zap.Int("chunks", len(chunks)))

	for _, chunk := range chunks {
		fmt.Printf("=== %s (%s)\n", chunk.ID, chunk.Title)
		if len(chunk.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(chunk.Tags, ", "))
		}
		fmt.Println(chunk.Content)
		fmt.Println()
	}
}
