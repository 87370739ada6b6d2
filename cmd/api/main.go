package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"subtrack/internal/adapter/repo"
	"subtrack/internal/http/handlers"
	httpapi "subtrack/internal/http/httpapi"
	"subtrack/internal/infra"
	"subtrack/internal/infra/geoip"
	"subtrack/internal/middleware"
	"subtrack/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := infra.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)

	users := repo.NewUserRepository(runner)
	plans := repo.NewPlanRepository(runner)
	subscriptions := repo.NewSubscriptionRepository(runner)
	notifications := repo.NewNotificationRepository(runner)
	discounts := repo.NewDiscountRepository(runner)
	usage := repo.NewUsageRepository(runner)
	stats := repo.NewStatsRepository(runner)

	notificationSvc := service.NewNotifications(notifications, users, logger)
	analyticsSvc := service.NewAnalytics(subscriptions, stats, discounts, usage, users)

	app := handlers.NewApp(cfg, logger, notificationSvc, analyticsSvc, users, plans, subscriptions, discounts)

	// GeoIP is optional; without a database file locale detection falls back
	// to headers and the configured default.
	var lookup middleware.CountryLookup
	if cfg.GeoIPDBPath != "" {
		resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			logger.Warn().Err(err).Msg("geoip database unavailable")
		} else {
			defer resolver.Close()
			lookup = resolver.CountryCode
		}
	}

	router := httpapi.NewRouter(app, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
