package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/config"
	httpDelivery "github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/delivery/http"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/domain"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/cache"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/catalog"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/logging"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/infrastructure/searchlog"
	"github.com/AbhinayVamshi07/Restaurant-Menu-Search-Engine/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}
	entry := logger.WithField("service", httpDelivery.ServiceName)

	entry.Infof("Starting %s v%s", httpDelivery.ServiceName, httpDelivery.Version)
	entry.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"cache":       cfg.Cache.Type,
		"cache_ttl":   cfg.Cache.TTL,
	}).Info("configuration loaded")

	// Load the catalog and fit the index once; both are read-only afterwards
	items, err := catalog.NewLoader(entry.WithField("component", "catalog")).LoadFile(cfg.Corpus.Path)
	if err != nil {
		if errors.Is(err, domain.ErrCorpusSchema) || errors.Is(err, domain.ErrEmptyCorpus) {
			entry.Fatalf("Invalid corpus: %v", err)
		}
		entry.Fatalf("Failed to load corpus: %v", err)
	}

	corpus, err := usecase.BuildCorpus(items)
	if err != nil {
		entry.Fatalf("Failed to index corpus: %v", err)
	}
	entry.WithFields(logrus.Fields{
		"items":      corpus.Size(),
		"vocabulary": corpus.Index().VocabularySize(),
	}).Info("corpus indexed")

	// Search log
	searchLogger, err := searchlog.NewLogger(
		searchlog.NewFileWriter(cfg.SearchLog.Path),
		searchlog.Config{
			Workers: cfg.SearchLog.Workers,
			Logger:  entry.WithField("component", "searchlog"),
		},
	)
	if err != nil {
		entry.Fatalf("Failed to start search logger: %v", err)
	}
	defer searchLogger.Close()

	// Result cache
	var resultCache domain.CacheRepository
	if cfg.Cache.Type == "memory" {
		memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
		defer memoryCache.Close()
		resultCache = memoryCache
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(
		corpus,
		resultCache,
		searchLogger,
		usecase.SearchServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: logger.IsLevelEnabled(logrus.DebugLevel),
			Logger:             entry.WithField("component", "search_service"),
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, entry.WithField("component", "http"))

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, entry.WithField("component", "http"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		entry.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	entry.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		entry.WithError(err).Error("server shutdown failed")
	}
}
