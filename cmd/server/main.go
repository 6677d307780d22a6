package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog/log"

	"github.com/dividenddash/backend/internal/api"
	"github.com/dividenddash/backend/internal/config"
	"github.com/dividenddash/backend/internal/database"
	"github.com/dividenddash/backend/internal/logger"
	"github.com/dividenddash/backend/internal/polygon"
	"github.com/dividenddash/backend/internal/refresh"
	"github.com/dividenddash/backend/internal/repository"
	"github.com/dividenddash/backend/internal/scheduler"
	"github.com/dividenddash/backend/internal/service"
)

func main() {
	logger.SetGlobalLogger(logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("LOG_PRETTY") == "true",
	}))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	fernetKey := loadFernetKey(cfg)

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	fundRepo := repository.NewFundRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	fundService := service.NewFundService(fundRepo)
	holdingsService := service.NewHoldingsService(db, positionRepo, transactionRepo, fundRepo)
	valuationService := service.NewValuationService(positionRepo, fundRepo)
	dividendService := service.NewDividendService(positionRepo, fundRepo)

	gate := refresh.NewGate(settingsRepo, refresh.WithCooldown(
		time.Duration(cfg.Market.CooldownHours*float64(time.Hour)),
	))
	refreshService := service.NewRefreshService(
		gate,
		settingsRepo,
		fundRepo,
		func(apiKey string) service.MarketClient { return polygon.NewClient(apiKey) },
		fernetKey,
	)

	// Bootstrap the provider API key from the environment when none is stored
	if cfg.Market.PolygonAPIKey != "" {
		if _, ok, err := settingsRepo.Get(repository.SettingPolygonAPIKey); err == nil && !ok {
			if err := refreshService.SetAPIKey(cfg.Market.PolygonAPIKey); err != nil {
				log.Warn().Err(err).Msg("Failed to store bootstrap API key")
			}
		}
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Fund:      fundService,
		Holdings:  holdingsService,
		Valuation: valuationService,
		Dividend:  dividendService,
		Refresh:   refreshService,
	}, cfg)

	// Schedule the automatic daily refresh
	sched := scheduler.New(log.Logger)
	if cfg.Market.RefreshSchedule != "" {
		if err := sched.AddJob(cfg.Market.RefreshSchedule, scheduler.NewRefreshJob(refreshService)); err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.Market.RefreshSchedule).Msg("Failed to schedule refresh job")
		}
	}
	sched.Start()
	defer sched.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// loadFernetKey decodes the configured encryption key, or generates an
// ephemeral one when unset. With an ephemeral key, stored API keys do not
// survive a restart.
func loadFernetKey(cfg *config.Config) *fernet.Key {
	if cfg.Market.FernetKey != "" {
		key, err := fernet.DecodeKey(cfg.Market.FernetKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid FERNET_KEY")
		}
		return key
	}

	var key fernet.Key
	if err := key.Generate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate encryption key")
	}
	log.Warn().Msg("FERNET_KEY not set; stored API keys will not survive a restart")
	return &key
}
