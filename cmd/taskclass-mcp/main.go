package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"taskclass/internal/classify"
	"taskclass/internal/config"
	"taskclass/internal/llm"
	"taskclass/internal/logging"
	"taskclass/internal/mcp"
	"taskclass/internal/mcp/tools"
	"taskclass/pkg/ollama"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	cleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer func() { _ = cleanup() }()

	// One classifier for the process lifetime; model and temperature are
	// threaded through each request, never mutated on shared state.
	classifier := classify.New(classify.Options{
		DefaultModelID:     cfg.ModelID,
		DefaultTemperature: cfg.Temperature,
		DefaultTimeout:     cfg.ClassifyTimeout,
		BatchWorkers:       cfg.BatchWorkers,
	}, llm.NewClient(cfg.OllamaBaseURL))

	server, err := mcp.NewServer(&tools.Deps{
		Classifier: classifier,
		Ollama:     ollama.New(ollama.WithBaseURL(cfg.OllamaBaseURL)),
		Config:     cfg,
	})
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}

	// Run the server with stdio transport
	slog.Info("starting taskclass MCP server on stdio",
		slog.String("backend", cfg.OllamaBaseURL),
		slog.String("model", cfg.ModelID),
	)
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
