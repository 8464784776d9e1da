package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"guidedigest-backend/config"
	"guidedigest-backend/inbox"
	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/service"
	"guidedigest-backend/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Inbox.Dir == "" {
		log.Fatal("INBOX_DIR is not set")
	}
	if err := os.MkdirAll(cfg.Inbox.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create inbox directory: %v", err)
	}

	appLog := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gateway, err := llm.New(ctx, cfg.Model)
	if err != nil {
		log.Fatalf("Failed to initialize %s gateway: %v", cfg.Model.Provider, err)
	}
	if closer, ok := gateway.(io.Closer); ok {
		defer closer.Close()
	}

	fileStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	summaryService := service.NewSummaryService(
		service.SummaryWithGateway(gateway),
		service.SummaryWithLogger(appLog),
		service.SummaryWithDefaults(cfg.Model.Default, models.SummaryStyle(cfg.Summary.Style), cfg.Summary.Language),
		service.SummaryWithBudget(cfg.Summary.MaxTokens, cfg.Summary.Temperature),
	)
	exportService := service.NewExportService(
		service.ExportWithStorage(fileStorage),
		service.ExportWithLogger(appLog),
	)

	processor := inbox.NewProcessor(summaryService, exportService, service.SummarizeRequest{}, appLog)

	watcher, err := inbox.NewWatcher(cfg.Inbox.Dir, processor.Handle, appLog, cfg.Inbox.MaxConcurrent)
	if err != nil {
		log.Fatalf("Failed to start inbox watcher: %v", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Inbox watcher failed: %v", err)
	}
}
