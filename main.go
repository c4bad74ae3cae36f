package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aditya-niranjan/smart-summarizer/config"
	"github.com/aditya-niranjan/smart-summarizer/handlers/api"
	"github.com/aditya-niranjan/smart-summarizer/logger"
	"github.com/aditya-niranjan/smart-summarizer/repository/sqlite"
	"github.com/aditya-niranjan/smart-summarizer/services/document"
	"github.com/aditya-niranjan/smart-summarizer/services/summary"
	"github.com/aditya-niranjan/smart-summarizer/services/video"
	"github.com/aditya-niranjan/smart-summarizer/storage"
	"github.com/aditya-niranjan/smart-summarizer/youtube"
)

func main() {
	// Environment file is optional; real deployments use actual env vars
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Init(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Database and transcript cache
	db, err := sqlite.InitDB(cfg.Database.Path, sqlite.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo, err := sqlite.NewRepository(db, sqlite.DefaultDBConfig())
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Transcript acquisition
	ytClient, err := youtube.NewClient(youtube.Config{
		SocketTimeout:      cfg.YouTube.SocketTimeout,
		Retries:            cfg.YouTube.Retries,
		SegmentLimit:       cfg.YouTube.SegmentLimit,
		PreferredLanguages: cfg.YouTube.PreferredLanguages,
		CookieFile:         cfg.YouTube.CookieFile,
	}, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube client: %v", err)
	}

	pipeline := youtube.NewPipeline(ytClient, ytClient, ytClient, youtube.PipelineConfig{
		RequestTimeout: cfg.YouTube.RequestTimeout,
	}, appLogger)

	// Optional transcript archive
	var archiver video.Archiver
	if cfg.Storage.Enabled() {
		spaces, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Failed to initialize transcript archive, continuing without it")
		} else {
			archiver = spaces
		}
	}

	videoService := video.NewService(pipeline, repo, archiver, video.Config{}, appLogger)

	// Summarization; without an API key the service degrades to truncation
	summaryConfig := summary.Config{
		ModelName:    cfg.Summary.ModelName,
		ChunkSize:    cfg.Summary.ChunkSize,
		ChunkOverlap: cfg.Summary.ChunkOverlap,
		MaxChunks:    cfg.Summary.MaxChunks,
		Temperature:  cfg.Summary.Temperature,
		TopP:         cfg.Summary.TopP,
	}
	var generator summary.TextGenerator
	if cfg.Summary.APIKey != "" {
		generator, err = summary.NewGeminiGenerator(context.Background(), cfg.Summary.APIKey, summaryConfig)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
	} else {
		appLogger.Warn("GEMINI_API_KEY not set, summaries will be truncated text")
	}
	summaryService := summary.NewService(generator, summaryConfig, appLogger)
	defer summaryService.Close()

	extractor := document.NewExtractor(appLogger)

	server := api.NewServer(cfg,
		api.WithLogger(appLogger),
		api.WithServices(videoService, summaryService, extractor),
	)

	// Graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			appLogger.WithError(err).Error("Server shutdown error")
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
