package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/event"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/service"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment, cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("database ready", zap.String("driver", cfg.Database.Driver))

	if cfg.Database.Seed {
		seeded, err := repository.SeedCatalog(ctx, db)
		if err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		log.Info("catalog seed", zap.Bool("seeded", seeded))
	}

	productCache := cache.NewNopProductCache()
	rdb, err := client.InitRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("catalog cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		productCache = cache.NewRedisProductCache(rdb, cfg.Redis.CatalogTTL)
		log.Info("catalog cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	publisher := event.NewNopPublisher()
	if writer := client.NewKafkaWriter(cfg.Kafka); writer != nil {
		publisher = event.NewKafkaPublisher(writer)
		log.Info("order events enabled", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.OrdersTopic))
	}
	defer publisher.Close()

	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	services := server.Services{
		Stores:    service.NewStoreService(db, storeRepo, log),
		Products:  service.NewProductService(db, storeRepo, productRepo, inventoryRepo, productCache, log),
		Orders:    service.NewOrderService(db, storeRepo, productRepo, orderRepo, inventoryRepo, productCache, publisher, log),
		Analytics: service.NewAnalyticsService(analyticsRepo, cfg.Currency),
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	srv := server.NewServer(log, tokens, cfg.Currency, services)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	errCh := make(chan error, 1)
	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		log.Info("signal received, starting graceful shutdown", zap.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
