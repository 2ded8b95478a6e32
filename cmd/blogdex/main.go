package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/blogdex/internal/config"
	"github.com/kailas-cloud/blogdex/internal/db"
	dbBleve "github.com/kailas-cloud/blogdex/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/blogdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/blogdex/internal/logger"
	"github.com/kailas-cloud/blogdex/internal/metrics"
	blogrepo "github.com/kailas-cloud/blogdex/internal/repository/blog"
	chiTransport "github.com/kailas-cloud/blogdex/internal/transport/chi"
	bloguc "github.com/kailas-cloud/blogdex/internal/usecase/blog"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/blogdex/internal/usecase/search"
	"github.com/kailas-cloud/blogdex/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting blogdex API server",
		zap.String("build", version.String()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("db_path", cfg.Database.Path),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, err := newStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register store metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	repo, err := blogrepo.New(store, blogrepo.Config{
		IndexName:  cfg.Index.Name,
		KeyPrefix:  cfg.Index.KeyPrefix,
		PageSize:   cfg.Index.PageSize,
		MaxResults: cfg.Index.MaxResults,
	})
	if err != nil {
		logger.Fatal("Invalid blog index", zap.Error(err))
	}
	if err := repo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create blog index", zap.Error(err))
	}
	logger.Info("Blog index ready", zap.String("index", cfg.Index.Name))

	var composerOpts []searchuc.Option
	if !cfg.Search.TextMatchRequired() {
		composerOpts = append(composerOpts, searchuc.WithMinShouldMatch(0))
	}

	blogSvc := bloguc.New(repo).
		WithComposer(searchuc.NewComposer(composerOpts...)).
		WithStrictCreate(cfg.Blogs.StrictCreate).
		WithMaxResults(cfg.Index.MaxResults)
	healthSvc := healthuc.New(store, store, cfg.Index.Name)

	server := chiTransport.NewServer(blogSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}

	logger.Info("Server stopped gracefully")
}

func newStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverBleve:
		s, err := dbBleve.NewStore(dbBleve.Config{Path: cfg.Path})
		if err != nil {
			return nil, fmt.Errorf("bleve store: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
