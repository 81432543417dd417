package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/kdhingra/meattrack-backend/api/routes"
	"github.com/kdhingra/meattrack-backend/internal/hotels"
	"github.com/kdhingra/meattrack-backend/internal/payments"
	"github.com/kdhingra/meattrack-backend/internal/purchases"
	"github.com/kdhingra/meattrack-backend/internal/reports"
	"github.com/kdhingra/meattrack-backend/internal/sales"
	"github.com/kdhingra/meattrack-backend/internal/users"
	"github.com/kdhingra/meattrack-backend/internal/vendors"
	"github.com/kdhingra/meattrack-backend/pkg/config"
	"github.com/kdhingra/meattrack-backend/pkg/db"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
	"github.com/kdhingra/meattrack-backend/pkg/metrics"
	"github.com/kdhingra/meattrack-backend/pkg/migrate"
	"github.com/kdhingra/meattrack-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	vendorRepo := vendors.NewRepository(conn)
	hotelsRepo := hotels.NewRepository(conn)

	usersService, err := users.NewService(users.NewRepository(conn), cfg.JWT, cfg.Password)
	exitOnError(logg, "users service", err)

	vendorsService, err := vendors.NewService(vendorRepo)
	exitOnError(logg, "vendors service", err)

	hotelsService, err := hotels.NewService(hotelsRepo)
	exitOnError(logg, "hotels service", err)

	purchasesService, err := purchases.NewService(dbClient, purchases.NewRepository(conn), vendorRepo)
	exitOnError(logg, "purchases service", err)

	salesService, err := sales.NewService(
		dbClient,
		sales.NewRetailRepository(conn),
		sales.NewHotelRepository(conn),
		hotelsRepo,
	)
	exitOnError(logg, "sales service", err)

	paymentsService, err := payments.NewService(dbClient, payments.NewRepository(conn), vendorRepo)
	exitOnError(logg, "payments service", err)

	reportsService, err := reports.NewService(reports.NewRecordStore(conn))
	exitOnError(logg, "reports service", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		HTTPMetrics: httpMetrics,
		Users:       usersService,
		Vendors:     vendorsService,
		Hotels:      hotelsService,
		Purchases:   purchasesService,
		Sales:       salesService,
		Payments:    paymentsService,
		Reports:     reportsService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		closeErr = multierr.Append(closeErr, redisClient.Close())
		closeErr = multierr.Append(closeErr, dbClient.Close())
		if closeErr != nil {
			logg.Error(ctx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(ctx, "shutdown complete")
	}
}

func exitOnError(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
