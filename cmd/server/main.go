package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"icecream-service/internal/api"
	"icecream-service/internal/api/handlers"
	"icecream-service/internal/cache"
	"icecream-service/internal/database"
	"icecream-service/internal/repository"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := database.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	if err := database.Seed(ctx, db); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	var flavourRepo repository.FlavourRepository = repository.NewFlavourRepository(db)

	// Redis is optional: without it every read goes straight to Postgres.
	rdb, err := cache.ConnectRedis(cfg)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", zap.Error(err))
	} else {
		defer rdb.Close()
		flavourRepo = cache.NewCachedFlavourRepository(flavourRepo, rdb, logger)
	}

	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	router := api.NewRouter(
		logger,
		handlers.NewFlavourHandler(flavourRepo),
		handlers.NewCustomerHandler(customerRepo),
		handlers.NewOrderHandler(orderRepo),
		handlers.NewHealthHandler(db),
	)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info("shutting down")

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(timeoutCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			_ = server.Close()
		}
	}
}
