// Snow Agent is the Alaska Department of Snow online assistant: a guarded
// retrieval-augmented chat service with a question classifier and an
// announcement generator.
package main

import (
	"context"
	"log"

	"snow-agent/internal/announce"
	"snow-agent/internal/api"
	"snow-agent/internal/chat"
	"snow-agent/internal/classify"
	"snow-agent/internal/config"
	"snow-agent/internal/gemini"
	"snow-agent/internal/rag"
	"snow-agent/internal/storage"
)

func main() {
	log.Println("Starting Snow Agent...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()

	// Process-lifetime clients: constructed once, shared across requests.
	model, err := gemini.NewClient(ctx, gemini.Config{
		Project:        cfg.Gemini.Project,
		Location:       cfg.Gemini.Location,
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		EmbeddingModel: cfg.Gemini.EmbeddingModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize model client: ", err)
	}

	chunkStore, err := storage.NewSQLiteChunkStore(cfg.Database.Path, cfg.Database.ChunksTable)
	if err != nil {
		log.Fatal("Failed to initialize chunk store: ", err)
	}
	defer func() {
		if err := chunkStore.Close(); err != nil {
			log.Printf("Error closing chunk store: %v", err)
		}
	}()

	logStore, err := storage.NewSQLiteLogStore(cfg.Database.Path, cfg.Database.LogTable)
	if err != nil {
		log.Fatal("Failed to initialize log store: ", err)
	}
	defer func() {
		if err := logStore.Close(); err != nil {
			log.Printf("Error closing log store: %v", err)
		}
	}()

	textGen := gemini.NewTextGenerator(model)
	retriever := rag.NewRetriever(model, chunkStore)
	pipeline := rag.NewPipeline(model, retriever)
	orchestrator := chat.NewOrchestrator(pipeline, chat.NewLogger(logStore))

	server := api.NewServer(
		orchestrator,
		classify.NewClassifier(textGen),
		announce.NewGenerator(textGen),
	)

	if err := server.Run(cfg.Addr()); err != nil {
		log.Printf("Failed to start server: %v", err)
		return
	}
}
