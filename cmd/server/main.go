package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guidedigest-backend/config"
	"guidedigest-backend/handlers"
	"guidedigest-backend/llm"
	"guidedigest-backend/logger"
	"guidedigest-backend/models"
	"guidedigest-backend/repository"
	"guidedigest-backend/service"
	"guidedigest-backend/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.Logging.Level)
	ctx := context.Background()

	gateway, err := llm.New(ctx, cfg.Model)
	if err != nil {
		log.Fatalf("Failed to initialize %s gateway: %v", cfg.Model.Provider, err)
	}
	if closer, ok := gateway.(io.Closer); ok {
		defer closer.Close()
	}
	log.Printf("%s gateway initialized (default model %s)", gateway.Provider(), cfg.Model.Default)

	// Archival is optional, downloads work without it.
	fileStorage, err := storage.NewStorage(ctx, cfg.Storage)
	if err != nil {
		log.Printf("Warning: export storage unavailable: %v", err)
	} else {
		log.Printf("Storage initialized (%s)", cfg.Storage.Type)
	}

	detector, err := service.NewTicketDetector(cfg.Support.Mode)
	if err != nil {
		log.Fatalf("Failed to initialize support tickets: %v", err)
	}

	sessionRepo := repository.NewSessionRepository()

	languageService := service.NewLanguageService(
		service.LanguageWithGateway(gateway),
		service.LanguageWithModel(cfg.Model.Default),
		service.LanguageWithLogger(appLog),
	)

	summaryService := service.NewSummaryService(
		service.SummaryWithGateway(gateway),
		service.SummaryWithLogger(appLog),
		service.SummaryWithDefaults(cfg.Model.Default, models.SummaryStyle(cfg.Summary.Style), cfg.Summary.Language),
		service.SummaryWithBudget(cfg.Summary.MaxTokens, cfg.Summary.Temperature),
	)

	chatService := service.NewChatService(
		service.ChatWithGateway(gateway),
		service.ChatWithLanguageService(languageService),
		service.ChatWithTicketDetector(detector),
		service.ChatWithInterpreter(service.NewInterpreter(cfg.LowConfidenceThreshold(), service.NewLogReasoningSink(appLog))),
		service.ChatWithLogger(appLog),
		service.ChatWithModel(cfg.Model.Default),
		service.ChatWithAutoLanguage(cfg.QA.AutoLanguage),
		service.ChatWithBudget(cfg.QA.MaxTokens, cfg.QA.Temperature),
		service.ChatWithDocumentContext(cfg.QA.DocumentContextChars),
	)

	exportOpts := []service.ExportServiceOption{service.ExportWithLogger(appLog)}
	if fileStorage != nil {
		exportOpts = append(exportOpts, service.ExportWithStorage(fileStorage))
	}
	exportService := service.NewExportService(exportOpts...)

	catalog := gateway.Models()

	// Setup Gin router
	r := gin.Default()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	handlers.RegisterRoutes(r, handlers.Handlers{
		Meta:    handlers.NewMetaHandler(gateway.Provider(), cfg.Model.Default, detector.Mode(), catalog),
		Session: handlers.NewSessionHandler(sessionRepo, chatService, appLog),
		Summary: handlers.NewSummaryHandler(sessionRepo, summaryService, catalog, cfg.Paths.SampleGuide, cfg.Server.MaxUploadBytes, appLog),
		Chat:    handlers.NewChatHandler(sessionRepo, chatService, languageService, catalog, appLog),
		Export:  handlers.NewExportHandler(sessionRepo, exportService, appLog),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server starting on port %s (support mode: %s)", cfg.Server.Port, detector.Mode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: forced shutdown: %v", err)
	}
}
