// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/baskitup/storefront/internal/config"
	"github.com/baskitup/storefront/internal/domain/cart"
	"github.com/baskitup/storefront/internal/domain/order"
	"github.com/baskitup/storefront/internal/infrastructure/database/postgres"
	"github.com/baskitup/storefront/internal/infrastructure/database/redis"
	"github.com/baskitup/storefront/internal/interfaces/http"
	"github.com/baskitup/storefront/internal/pkg/email"
	"github.com/baskitup/storefront/internal/store"
)

func main() {
	// Money fields serialize as JSON numbers, matching the wire format the
	// storefront clients expect.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := newLogger(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	migration := postgres.NewMigration(db.GetDB())
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		log.Warnf("Index creation failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(); err != nil {
			log.Warnf("Data seeding failed: %v", err)
		}
	}

	documentStore, err := newDocumentStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	carts := cart.NewService(documentStore)
	recorder := email.NewRecorder(cfg, log)

	tracker := order.NewTracker(
		documentStore,
		carts,
		newPersister(cfg, documentStore, log),
		newRemoteClient(cfg),
		log,
	)

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), carts, tracker, recorder, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Info("Server shutdown completed")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func newDocumentStore(cfg *config.Config, redisClient *redis.Client) (store.Store, error) {
	if cfg.Store.Backend == "redis" {
		return store.NewRedisStore(redisClient.GetClient(), cfg.App.Name), nil
	}
	return store.NewFileStore(cfg.Store.DataDir)
}

func newPersister(cfg *config.Config, documentStore store.Store, log *logrus.Logger) order.Persister {
	local := order.NewLocalPersister(documentStore)
	if cfg.Orders.Mode == "remote" {
		return order.NewRemotePersister(newRemoteClient(cfg), local, log)
	}
	return local
}

func newRemoteClient(cfg *config.Config) *order.Client {
	if cfg.Orders.Mode != "remote" || cfg.Orders.RemoteURL == "" {
		return nil
	}
	return order.NewClient(cfg.Orders.RemoteURL, cfg.Orders.RemoteTimeout)
}
