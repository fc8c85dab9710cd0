package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gameplay-analysis-api/config"
	"gameplay-analysis-api/gemini"
	"gameplay-analysis-api/handlers"
	"gameplay-analysis-api/storage"
	valkeystore "gameplay-analysis-api/valkey"
)

func main() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = ""
	zapCfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalw("failed to load configuration",
			"error", err)
	}

	ctx := context.Background()

	// Inference client
	client, err := gemini.New(ctx, cfg.Gemini, logger)
	if err != nil {
		sugar.Fatalw("failed to init inference client",
			"error", err)
	}

	deps := &handlers.Deps{
		Analyzer: client,
		Game:     cfg.Game,
		Focus:    cfg.Focus,
	}

	// Blob store: S3 when a bucket is configured, local filesystem otherwise.
	if cfg.BlobStoreConfigured() {
		blobs, err := storage.NewS3Blob(ctx, cfg.S3, logger)
		if err != nil {
			sugar.Fatalw("failed to init blob store",
				"error", err)
		}
		deps.Blobs = blobs
	} else {
		sugar.Info("No bucket configured, storing videos on local filesystem")
		blobs, err := storage.NewLocalBlob(cfg.VideoDir, logger)
		if err != nil {
			sugar.Fatalw("failed to init local blob store",
				"error", err)
		}
		deps.Blobs = blobs
	}

	// Record store: optional; without it analyses are not persisted and the
	// listing page stays empty.
	if cfg.RecordStoreConfigured() {
		records, err := valkeystore.New(cfg.Valkey, logger)
		if err != nil {
			sugar.Fatalw("failed to init record store",
				"error", err)
		}
		defer records.Close()
		deps.Records = records
	} else {
		sugar.Info("No record store configured, analyses will not be persisted")
	}

	// Analysis index: optional manifest of analyzed videos.
	if cfg.IndexConfigured() {
		index, err := storage.OpenIndex(cfg.Postgres, logger)
		if err != nil {
			sugar.Fatalw("failed to init analysis index",
				"error", err)
		}
		defer index.Close()
		if err := index.CreateSchema(ctx); err != nil {
			sugar.Fatalw("failed to create index schema",
				"error", err)
		}
		deps.Index = index
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	sugar.Info("Creating router")

	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.HandleMethodNotAllowed = true
	r.NoMethod(handlers.HandleUsage())

	// Routes
	r.POST("/", handlers.RequireAPIKey(cfg.APIKey), handlers.HandleVideoUpload(logger, deps))
	r.GET("/", handlers.HandleAnalysesPage(logger, deps))
	r.GET("/analyses", handlers.HandleListAnalyses(logger, deps))
	r.GET("/analyses/:video", handlers.HandleGetAnalysis(logger, deps))

	// Health check
	r.GET("/healthcheck", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	sugar.Infow("Running on port",
		"port", cfg.Port)
	r.Run(fmt.Sprintf(":%s", cfg.Port))
}
