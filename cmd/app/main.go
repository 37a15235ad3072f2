// @title Lorapp API
// @version 1.0
// @description Garden inventory backend: lunar and weather aware planting calendar with push notifications.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/config"
	"github.com/urtzih/Lorapp/internal/database"
	"github.com/urtzih/Lorapp/internal/database/postgres"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/envcache"
	"github.com/urtzih/Lorapp/internal/lunar"
	"github.com/urtzih/Lorapp/internal/notify"
	"github.com/urtzih/Lorapp/internal/scheduler"
	"github.com/urtzih/Lorapp/internal/server"
	"github.com/urtzih/Lorapp/internal/worker"
)

const (
	dbMaxConns   = 10
	dbMaxIdle    = 5 * time.Minute
	dbMaxLife    = 30 * time.Minute
	workerCount  = 2
	jobQueueSize = 16

	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	log := slog.Default()

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	inventoryRepo := postgres.NewInventoryRepository(pool)
	lunarCacheRepo := postgres.NewLunarCacheRepository(pool)
	weatherCacheRepo := postgres.NewWeatherCacheRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	clock := domain.RealClock{}
	calc := lunar.NewCalculator()
	defaultLoc := domain.GeoPoint{
		Name:      cfg.DefaultLocation,
		Latitude:  cfg.DefaultLatitude,
		Longitude: cfg.DefaultLongitude,
	}

	// Environmental caches
	lunarService := envcache.NewLunarService(
		lunarCacheRepo,
		envcache.NewAstronomyFetcher(cfg.AstronomyBaseURL, cfg.AstronomyAPIKey),
		calc,
		clock,
	)
	weatherService := envcache.NewWeatherService(
		weatherCacheRepo,
		envcache.NewForecastFetcher(cfg.WeatherBaseURL),
		clock,
	)

	// Calendar engine with environmental enrichment
	envProvider := calendar.NewEnvProvider(lunarService, weatherService, calc, defaultLoc)
	engine := calendar.NewEngine(inventoryRepo, envProvider, clock)

	// Notification dispatch
	var sender notify.Sender
	if cfg.PushEnabled() {
		sender = notify.NewWebPushSender(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject)
	} else {
		log.Warn("VAPID keys not configured, push dispatch disabled")
		sender = notify.NewDisabledSender()
	}
	notifyService := notify.NewService(inventoryRepo, subscriptionRepo, notificationRepo, engine, sender, clock)

	// Background jobs
	workerPool := worker.NewPool(workerCount, jobQueueSize)
	workerPool.Start()
	defer workerPool.Stop()

	sched := scheduler.New(workerPool, clock)
	if cfg.SchedulerEnabled {
		sched.ScheduleMonthly(1, 9, 0, "monthly planting", worker.JobFunc(notifyService.RunMonthlyPlanting))
		sched.ScheduleDaily(10, 0, "expiration alerts", worker.JobFunc(notifyService.RunExpirationAlerts))
		sched.ScheduleDaily(8, 0, "transplant reminders", worker.JobFunc(notifyService.RunTransplantReminders))
		log.Info("Notification scheduler started")
	} else {
		log.Info("Notification scheduler disabled")
	}
	defer sched.Stop()

	srv := server.NewServer(cfg.Port, nil, server.Deps{
		DBPool:         pool,
		Inventory:      inventoryRepo,
		Subscriptions:  subscriptionRepo,
		History:        notificationRepo,
		Sender:         sender,
		Engine:         engine,
		LunarService:   lunarService,
		WeatherService: weatherService,
		Calculator:     calc,
		DefaultLoc:     defaultLoc,
		Clock:          clock,
	})

	// Serve until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		log.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error("Graceful shutdown failed", "error", err)
		}
	}
}
