package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcanus/arcanus/internal/adapter/llm"
	"github.com/arcanus/arcanus/internal/config"
	"github.com/arcanus/arcanus/internal/policy"
	"github.com/arcanus/arcanus/internal/portrait"
	"github.com/arcanus/arcanus/internal/repository"
	"github.com/arcanus/arcanus/internal/service"
	transport "github.com/arcanus/arcanus/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting arcanus...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	store, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	// Initialize completion client (ARCANUS_MODE=MOCK for offline work)
	llmClient, err := llm.NewCompletionClient(llm.AnthropicConfig{
		APIKey:  cfg.AnthropicAPIKey,
		BaseURL: cfg.AnthropicBaseURL,
		Model:   cfg.AnthropicModel,
	})
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize portrait pipeline. Without an OpenAI key the endpoint
	// reports failure per request instead of blocking startup.
	var generator portrait.Generator
	if cfg.OpenAIAPIKey != "" {
		generator, err = portrait.NewOpenAIGenerator(portrait.OpenAIConfig{APIKey: cfg.OpenAIAPIKey})
		if err != nil {
			log.Fatalf("Failed to initialize image generator: %v", err)
		}
	} else {
		log.Println("WARN: OPENAI_API_KEY not set, portrait generation disabled")
		generator = portrait.Disabled{}
	}
	blobs, err := portrait.NewFilesystemStore(cfg.PortraitDir, cfg.PortraitBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize portrait store: %v", err)
	}

	// Initialize service
	svc := service.New(service.Config{
		Store:      store,
		LLM:        llmClient,
		Policy:     policyEngine,
		Generator:  generator,
		Blobs:      blobs,
		MaxTokens:  cfg.MaxTokens,
		LLMTimeout: cfg.LLMTimeout,
	})

	// Create HTTP server
	server := transport.NewServer(svc, transport.ServerConfig{
		AuthSecret:   []byte(cfg.AuthSecret),
		PortraitDir:  blobs.Dir(),
		PortraitPath: cfg.PortraitBaseURL,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down arcanus...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Arcanus stopped")
}
