// Command seed bulk-imports a JSON movie export into the vector store.
//
// Usage:
//
//	seed -file data/movies.json
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/config"
	dbQdrant "github.com/cinedex/cinedex/internal/db/qdrant"
	logpkg "github.com/cinedex/cinedex/internal/logger"
	collectionrepo "github.com/cinedex/cinedex/internal/repository/collection"
	movierepo "github.com/cinedex/cinedex/internal/repository/movie"
	"github.com/cinedex/cinedex/internal/seeder"
	"github.com/cinedex/cinedex/internal/transport/cohere"
	"github.com/cinedex/cinedex/internal/usecase/lifecycle"
)

func main() {
	file := flag.String("file", "data/movies.json", "path to the JSON movie export")
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbQdrant.NewStore(dbQdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create qdrant store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	collRepo := collectionrepo.NewRepository(store, cfg.Search.Collection, uint64(cfg.Search.VectorSize), logger)
	manager := lifecycle.NewManager(
		collRepo,
		cfg.Search.InitMaxAttempts,
		time.Duration(cfg.Search.InitRetrySec)*time.Second,
		logger,
	)
	if err := manager.EnsureReady(ctx); err != nil {
		logger.Fatal("Provisioning aborted", zap.Error(err))
	}
	if !manager.Ready() {
		logger.Fatal("Collection not reachable, aborting seed")
	}

	// Documents are embedded with the document input type, unlike queries.
	embedder := cohere.NewEmbedder(&cohere.Config{
		APIKey:      cfg.Embedding.APIKey,
		BaseURL:     cfg.Embedding.BaseURL,
		Model:       cfg.Embedding.Model,
		Dimensions:  cfg.Embedding.Dimensions,
		InputType:   "search_document",
		MaxAttempts: cfg.Embedding.MaxAttempts,
		Logger:      logger,
	})

	movieRepo := movierepo.NewRepository(store, cfg.Search.Collection, cfg.Search.ScoreThreshold, logger)

	written, err := seeder.New(embedder, movieRepo, logger).SeedFile(ctx, *file)
	if err != nil {
		logger.Fatal("Seed failed", zap.Int("written", written), zap.Error(err))
	}

	logger.Info("Seed finished", zap.String("file", *file), zap.Int("written", written))
}
