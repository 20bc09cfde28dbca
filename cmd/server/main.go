package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/restodash/lossledger/internal/api"
	"github.com/restodash/lossledger/internal/cache"
	"github.com/restodash/lossledger/internal/config"
	"github.com/restodash/lossledger/internal/domain"
	"github.com/restodash/lossledger/internal/ledger"
	"github.com/restodash/lossledger/internal/notify"
	"github.com/restodash/lossledger/internal/repository"
	"github.com/restodash/lossledger/internal/repository/memory"
	"github.com/restodash/lossledger/internal/repository/postgres"
	"github.com/restodash/lossledger/internal/scheduler"
	"github.com/restodash/lossledger/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger.UseJSON()
	}

	lossRepo, inventoryRepo, cleanup, err := buildRepositories(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer cleanup()

	statsCache, err := cache.NewStatsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Statistics cache unavailable, continuing without it")
		statsCache = cache.NewNoopStatsCache()
	}

	service := ledger.NewService(lossRepo, inventoryRepo, statsCache, cfg.Finance)

	var notifier notify.Notifier
	if wh := notify.NewWebhookNotifier(cfg.Notify); wh != nil {
		notifier = wh
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(cfg.Scheduler, service, notifier)
		if err := sched.Start(); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to start detection scheduler")
		}
	}

	router := api.NewRouter(service, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Bool("demo", cfg.App.Demo).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildRepositories(cfg *config.Config) (repository.LossRepository, repository.InventoryRepository, func(), error) {
	if cfg.App.Demo {
		return memory.NewLossRepository(), memory.NewInventoryRepository(demoInventory()), func() {}, nil
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to close database")
		}
	}

	return postgres.NewLossRepository(db), postgres.NewInventoryRepository(db), cleanup, nil
}

func demoInventory() []domain.InventoryItem {
	day := func(offset int) *time.Time {
		t := time.Now().AddDate(0, 0, offset)
		return &t
	}

	return []domain.InventoryItem{
		{ID: "ing-001", Name: "Saumon frais", CurrentStock: decimal.NewFromInt(2), UnitPrice: decimal.NewFromFloat(28.5), Unit: "kg", ExpiryDate: day(-3), Category: "Poissons"},
		{ID: "ing-002", Name: "Filet de boeuf", CurrentStock: decimal.NewFromFloat(4.5), UnitPrice: decimal.NewFromFloat(32.0), Unit: "kg", ExpiryDate: day(5), Category: "Viandes"},
		{ID: "ing-003", Name: "Creme fraiche", CurrentStock: decimal.NewFromInt(6), UnitPrice: decimal.NewFromFloat(3.2), Unit: "l", ExpiryDate: day(-1), Category: "Produits laitiers"},
		{ID: "ing-004", Name: "Tomates grappe", CurrentStock: decimal.NewFromInt(12), UnitPrice: decimal.NewFromFloat(2.8), Unit: "kg", ExpiryDate: day(2), Category: "Legumes"},
		{ID: "ing-005", Name: "Huile d'olive", CurrentStock: decimal.NewFromInt(8), UnitPrice: decimal.NewFromFloat(9.5), Unit: "l", ExpiryDate: nil, Category: "Epicerie"},
	}
}
