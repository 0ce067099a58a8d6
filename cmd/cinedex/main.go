package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cinedex/cinedex/internal/config"
	dbQdrant "github.com/cinedex/cinedex/internal/db/qdrant"
	dbRedis "github.com/cinedex/cinedex/internal/db/redis"
	"github.com/cinedex/cinedex/internal/domain"
	logpkg "github.com/cinedex/cinedex/internal/logger"
	"github.com/cinedex/cinedex/internal/metrics"
	collectionrepo "github.com/cinedex/cinedex/internal/repository/collection"
	"github.com/cinedex/cinedex/internal/repository/embcache"
	movierepo "github.com/cinedex/cinedex/internal/repository/movie"
	chiTransport "github.com/cinedex/cinedex/internal/transport/chi"
	"github.com/cinedex/cinedex/internal/transport/cohere"
	openaiLLM "github.com/cinedex/cinedex/internal/transport/openai"
	cataloguc "github.com/cinedex/cinedex/internal/usecase/catalog"
	intentuc "github.com/cinedex/cinedex/internal/usecase/intent"
	"github.com/cinedex/cinedex/internal/usecase/lifecycle"
	searchuc "github.com/cinedex/cinedex/internal/usecase/search"
	"github.com/cinedex/cinedex/internal/usecase/session"
	"github.com/cinedex/cinedex/internal/version"
)

func main() {
	// .env is optional; real deployments use environment variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("qdrant_host", cfg.Qdrant.Host),
		zap.String("collection", cfg.Search.Collection),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

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

	// Collection provisioning runs in the background; the server starts
	// serving immediately and reports not-ready until it completes.
	collRepo := collectionrepo.NewRepository(store, cfg.Search.Collection, uint64(cfg.Search.VectorSize), logger)
	manager := lifecycle.NewManager(
		collRepo,
		cfg.Search.InitMaxAttempts,
		time.Duration(cfg.Search.InitRetrySec)*time.Second,
		logger,
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := manager.EnsureReady(rootCtx); err != nil {
			logger.Warn("Collection provisioning aborted", zap.Error(err))
		}
	}()

	embedder := buildEmbedder(cfg, logger)

	var classifier intentuc.Completer
	if cfg.LLM.APIKey != "" {
		classifier = openaiLLM.NewClassifier(&openaiLLM.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Logger:  logger,
		})
		logger.Info("Intent classifier enabled", zap.String("model", cfg.LLM.Model))
	} else {
		logger.Info("No LLM credentials, intent classification uses rules only")
	}

	movieRepo := movierepo.NewRepository(store, cfg.Search.Collection, cfg.Search.ScoreThreshold, logger)

	searchSvc := searchuc.New(movieRepo, embedder, manager)
	catalogSvc := cataloguc.New(movieRepo, manager)
	intentSvc := intentuc.New(classifier)
	sessions := session.NewStore(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		cfg.Session.MaxSessions,
	)

	server := chiTransport.NewServer(searchSvc, catalogSvc, intentSvc, sessions, manager, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain: Cohere -> Redis cache. The
// cache layer is added only when cache addresses are configured.
func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	base := cohere.NewEmbedder(&cohere.Config{
		APIKey:      cfg.Embedding.APIKey,
		BaseURL:     cfg.Embedding.BaseURL,
		Model:       cfg.Embedding.Model,
		Dimensions:  cfg.Embedding.Dimensions,
		InputType:   cfg.Embedding.InputType,
		MaxAttempts: cfg.Embedding.MaxAttempts,
		Logger:      logger,
	})

	if len(cfg.Cache.Addrs) == 0 {
		return base
	}

	kv, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache disabled", zap.Error(err))
		return base
	}

	logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	return embcache.New(
		base, kv,
		time.Duration(cfg.Cache.TTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal,
		logger,
	)
}
