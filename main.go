package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"juicepos/internal/cart"
	cart_api "juicepos/internal/cart/api"
	"juicepos/internal/config"
	"juicepos/internal/kafka"
	"juicepos/internal/ledger"
	ledger_api "juicepos/internal/ledger/api"
	"juicepos/internal/logger"
	"juicepos/internal/presets"
	presets_api "juicepos/internal/presets/api"
	"juicepos/internal/receipt"
	"juicepos/internal/stats"
	stats_api "juicepos/internal/stats/api"
	"juicepos/internal/storage"
)

func openStore(cfg *config.Config, log *logger.Logger) storage.Store {
	switch cfg.Storage.Backend {
	case "redis":
		store, err := storage.DialRedis(cfg.Redis.Addr, cfg.Redis.PoolSize)
		if err != nil {
			log.Fatal("STORAGE", fmt.Sprintf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err))
		}
		log.Info("STORAGE", fmt.Sprintf("Using Redis blob store at %s", cfg.Redis.Addr))
		return store
	case "sqlite":
		store, err := storage.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatal("STORAGE", fmt.Sprintf("Failed to open SQLite database %s: %v", cfg.Storage.SQLitePath, err))
		}
		log.Info("STORAGE", fmt.Sprintf("Using SQLite blob store at %s", cfg.Storage.SQLitePath))
		return store
	default:
		log.Fatal("CONFIG", fmt.Sprintf("Unknown storage backend %q", cfg.Storage.Backend))
		return nil
	}
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting juicepos initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()

	store := openStore(cfg, log)
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	var publisher ledger.SalePublisher
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicExists(cfg.Kafka.Brokers, cfg.Kafka.Topic); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		log.Info("KAFKA", fmt.Sprintf("Sale events enabled on topic %s", cfg.Kafka.Topic))
	} else {
		log.Info("KAFKA", "Sale events disabled")
	}

	salesStore := ledger.NewSalesStore(store, publisher, log)
	log.Info("LEDGER", fmt.Sprintf("Loaded %d sales and %d festival weeks", len(salesStore.Sales()), len(salesStore.Weeks())))

	presetStore := presets.NewStore(store, log)
	log.Info("PRESETS", fmt.Sprintf("Loaded %d presets", len(presetStore.Presets())))

	orderCart := cart.New()
	statsService := stats.NewService(salesStore)
	recomputer := stats.NewRecomputer(statsService)

	var receiptGen *receipt.Generator
	if cfg.Receipt.Secret != "" {
		receiptGen = receipt.NewGenerator(cfg.Receipt.Secret)
		log.Info("RECEIPT", "QR receipts enabled")
	}

	cartHandler := &cart_api.Handler{
		Cart:    orderCart,
		Ledger:  salesStore,
		Receipt: receiptGen,
		Logger:  log,
	}
	ledgerHandler := &ledger_api.Handler{Ledger: salesStore, Logger: log}
	presetHandler := &presets_api.Handler{Store: presetStore, Logger: log}
	statsHandler := &stats_api.Handler{Service: statsService, Recomputer: recomputer, Logger: log}

	log.Info("HTTP", "Setting up router")
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		cartHandler.RegisterRoutes(r)
		ledgerHandler.RegisterRoutes(r)
		presetHandler.RegisterRoutes(r)
		statsHandler.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("juicepos running on %s", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "juicepos shutdown complete")
	}
	recomputer.Wait()
}
