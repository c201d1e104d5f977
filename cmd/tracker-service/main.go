package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"signal-outcome-tracker/internal/tracker/config"
	delivery "signal-outcome-tracker/internal/tracker/delivery/http"
	"signal-outcome-tracker/internal/tracker/repository"
	"signal-outcome-tracker/internal/tracker/service"
	"signal-outcome-tracker/pkg/logger"
	"signal-outcome-tracker/pkg/postgres"
	"signal-outcome-tracker/pkg/redis"
	"signal-outcome-tracker/pkg/telegram"
	"signal-outcome-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the signal outcome tracker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Signal Outcome Tracker", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize Telegram notifier
	telegramNotifier := telegram.NewNoopNotifier()
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	signalEventRepo := repository.NewSignalEventRepository(db.DB)
	signalOutcomeRepo := repository.NewSignalOutcomeRepository(db.DB)
	marketDataRepo := repository.NewMarketDataRepository(cfg, appLogger)
	learningMetricRepo := repository.NewLearningMetricRepository(db.DB)
	weightHistoryRepo := repository.NewWeightHistoryRepository(db.DB)
	monitoringRepo := repository.NewSystemMonitoringRepository(db.DB)

	// Initialize services
	telemetry := service.NewTelemetryEmitter(monitoringRepo, appLogger)
	trackerSvc := service.NewOutcomeTrackerService(cfg, appLogger, signalEventRepo, signalOutcomeRepo, marketDataRepo, telemetry, redisClient.Client, telegramNotifier)
	metricsSvc := service.NewLearningMetricsService(learningMetricRepo, signalOutcomeRepo, telemetry, appLogger)
	weightSvc := service.NewWeightHistoryService(weightHistoryRepo, appLogger)
	monitoringSvc := service.NewMonitoringService(monitoringRepo, appLogger)

	// Schedule the tracking tick and the daily metrics recompute
	cronRunner := cron.New()
	_, err = cronRunner.AddFunc(cfg.Tracker.CronSchedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, cfg.Tracker.RunTimeout)
		defer cancel()
		if err := trackerSvc.RunOutcomeTracking(runCtx); err != nil {
			appLogger.Error("Outcome tracking run failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		appLogger.Fatal("Invalid tracker cron schedule", logger.ErrorField(err))
	}
	_, err = cronRunner.AddFunc(cfg.Tracker.MetricsCronSchedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, cfg.Tracker.RunTimeout)
		defer cancel()
		// Recompute yesterday so late 24h evaluations are included.
		date := utils.StartOfDay(utils.TimeNowUTC().AddDate(0, 0, -1))
		if err := metricsSvc.RecomputeForDate(runCtx, date); err != nil {
			appLogger.Error("Learning metrics recompute failed", logger.ErrorField(err))
		}
	})
	if err != nil {
		appLogger.Fatal("Invalid metrics cron schedule", logger.ErrorField(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	metricsHandler := delivery.NewMetricsHandler(metricsSvc, appLogger)
	metricsHandler.RegisterRoutes(apiV1.Group("/metrics"))

	weightsHandler := delivery.NewWeightsHandler(weightSvc, appLogger)
	weightsHandler.RegisterRoutes(apiV1.Group("/weights"))

	monitoringHandler := delivery.NewMonitoringHandler(monitoringSvc, appLogger)
	monitoringHandler.RegisterRoutes(apiV1.Group("/monitoring"))

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "tracker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-tracker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing tracker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
