package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nithin-250/RMAN5/internal/config"
	"github.com/Nithin-250/RMAN5/internal/database"
	"github.com/Nithin-250/RMAN5/internal/detector"
	"github.com/Nithin-250/RMAN5/internal/geo"
	"github.com/Nithin-250/RMAN5/internal/handler"
	"github.com/Nithin-250/RMAN5/internal/logger"
	"github.com/Nithin-250/RMAN5/internal/metrics"
	"github.com/Nithin-250/RMAN5/internal/middleware"
	"github.com/Nithin-250/RMAN5/internal/service"
	"github.com/Nithin-250/RMAN5/internal/store"
)

func main() {
	log := logger.NewLogger("fraud-detection")
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	transactions, blacklist, backend, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize stores", zap.Error(err))
	}
	log.Info("stores initialized", zap.String("backend", backend))

	if err := store.SeedBlacklist(ctx, blacklist, cfg.BlacklistSeedAccounts); err != nil {
		log.Fatal("failed to seed blacklist", zap.Error(err))
	}

	collector := metrics.NewCollector()

	engine := service.NewFraudEngine(service.Deps{
		Transactions: transactions,
		Blacklist:    blacklist,
		BlockedIPs:   store.NewIPSet(cfg.BlacklistedIPs),
		Locations:    store.NewLocationTracker(),
		Anomaly:      detector.NewAnomalyDetector(cfg.AnomalyWindow, cfg.AnomalyThreshold),
		GeoDrift:     detector.NewGeoDriftDetector(geo.DefaultDirectory(), cfg.MaxDriftKm),
		Collector:    collector,
		Logger:       log,
	})

	fraudHandler := handler.NewFraudHandler(engine, transactions, blacklist, collector, log)

	router := setupRouter(fraudHandler, collector, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting fraud detection service", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// buildStores selects the persistence backend: MongoDB when MONGO_URI is
// set, else Postgres when DATABASE_URL is set, else process-local memory.
func buildStores(ctx context.Context, cfg *config.Config) (store.TransactionStore, store.BlacklistStore, string, error) {
	switch {
	case cfg.MongoURI != "":
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, "", err
		}
		db := client.Database(cfg.MongoDBName)
		blacklist, err := store.NewMongoBlacklistStore(ctx, db.Collection("blacklist"))
		if err != nil {
			return nil, nil, "", err
		}
		return store.NewMongoTransactionStore(db.Collection(cfg.MongoCollectionName)), blacklist, "mongodb", nil

	case cfg.DatabaseURL != "":
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, "", err
		}
		return store.NewPostgresTransactionStore(db), store.NewPostgresBlacklistStore(db), "postgres", nil

	default:
		return store.NewMemoryTransactionStore(), store.NewMemoryBlacklistStore(), "memory", nil
	}
}

func setupRouter(h *handler.FraudHandler, collector *metrics.Collector, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	router.GET("/metrics", gin.WrapH(collector.Handler()))

	v1 := router.Group("/api/v1")
	{
		fraud := v1.Group("/fraud")
		{
			fraud.POST("/check", h.CheckFraud)
		}
		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/blacklist", h.ListBlacklist)
	}

	return router
}
