// package main provides the entry point for the kpi-backend microservice,
// including dataset loading, the suggestion and chatbot engines, and the
// REST and GraphQL API servers.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/secdash/kpi-backend/chatbot"
	"github.com/secdash/kpi-backend/config"
	"github.com/secdash/kpi-backend/database"
	"github.com/secdash/kpi-backend/dataset"
	"github.com/secdash/kpi-backend/embed"
	"github.com/secdash/kpi-backend/internal/api"
	"github.com/secdash/kpi-backend/internal/kafka"
	"github.com/secdash/kpi-backend/kvcache"
	"github.com/secdash/kpi-backend/restapi"
	"github.com/secdash/kpi-backend/suggest"
	"github.com/secdash/kpi-backend/util"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	logger := database.InitLogger()
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load(util.GetEnvDefault("KPI_CONFIG", "config.yaml"))
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	reference, err := cfg.Reference()
	if err != nil {
		logger.Fatal("Invalid reference date", zap.Error(err))
	}

	// Select the dataset source
	var source dataset.Source
	switch cfg.DatasetSource {
	case "arango":
		db := database.InitializeDatabase()
		source = dataset.NewArangoSource(db)
	default:
		if !util.FileExists(cfg.DatasetPath) {
			logger.Fatal("Dataset file not found", zap.String("path", cfg.DatasetPath))
		}
		source = dataset.NewXLSXSource(cfg.DatasetPath)
	}

	store := dataset.NewStore(source, cfg.CacheTTL(), reference, logger)

	ctx := context.Background()
	if err := store.Refresh(ctx); err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}
	logger.Info("Dataset loaded",
		zap.Int("records", store.Len()),
		zap.String("source", cfg.DatasetSource))

	// The embedding model server is optional. Without it suggestions fall
	// back to weight ordering and the chatbot reports unavailable.
	var embedder embed.Embedder
	if client := embed.NewClient(cfg.EmbedURL); client != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
		err := client.Probe(probeCtx)
		cancel()
		if err != nil {
			logger.Warn("Embedding server unreachable, ML scoring disabled", zap.Error(err))
		} else {
			embedder = client
			logger.Info("Embedding server connected", zap.String("url", cfg.EmbedURL))
		}
	} else {
		logger.Info("EMBED_URL not set, ML scoring disabled")
	}

	ranker := suggest.NewRanker(store, embedder, cfg.Thresholds, logger)
	chat := chatbot.NewResponder(embedder, chatbot.DefaultKnowledgeBase(), cfg.Thresholds.ChatConfidence, logger)

	// Optional valkey response cache
	var cache kvcache.KVStore
	if util.IsNotEmpty(cfg.ValkeyAddr) {
		cache, err = kvcache.NewValkeyStore(cfg.ValkeyAddr)
		if err != nil {
			logger.Warn("Valkey unreachable, response caching disabled", zap.Error(err))
		} else {
			defer cache.Close() //nolint:errcheck
			logger.Info("Valkey connected", zap.String("addr", cfg.ValkeyAddr))
		}
	}

	// Optional Kafka worker for dataset refresh events
	if util.IsNotEmpty(cfg.KafkaBrokers) {
		if err := kafka.RunEventProcessor(ctx, &cfg, store); err != nil {
			logger.Warn("Kafka unreachable, refresh events disabled", zap.Error(err))
		}
	}

	app := api.NewFiberApp(restapi.Deps{
		Store:  store,
		Ranker: ranker,
		Chat:   chat,
		Cache:  cache,
		Config: cfg,
		Logger: logger,
	})

	port := os.Getenv("MS_PORT")
	addr := cfg.ListenAddr
	if port != "" {
		addr = ":" + port
	}

	logger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
