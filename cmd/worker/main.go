package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sinclaire-white/vehicle-renting-server/internal/config"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/kafka"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
	"github.com/sinclaire-white/vehicle-renting-server/internal/worker"
)

func main() {
	// Initialize structured JSON logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pgPool, err := postgres.NewClient(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
	})
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgPool.Close()

	if err := postgres.InitSchema(ctx, pgPool); err != nil {
		logger.Error("failed to init schema", "error", err)
		os.Exit(1)
	}

	// Dependencies
	bookingRepo := postgres.NewBookingRepository(pgPool)
	vehicleRepo := postgres.NewVehicleRepository(pgPool)
	outboxRepo := postgres.NewOutboxRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	kafkaProd := kafka.NewProducer(kafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaProd.Close()

	// Metrics endpoint for both pollers
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.Sweep.MetricsPort, mux); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// Sweep poller: auto-returns bookings whose rental period has ended
	sweepUC := usecase.NewSweepExpired(txManager, bookingRepo, vehicleRepo, outboxRepo)
	sweep := worker.NewSweepPoller(sweepUC, cfg.Sweep.Interval)
	go func() {
		if err := sweep.Run(ctx); err != nil {
			logger.Error("sweep poller stopped with error", "error", err)
		}
	}()

	// Outbox poller: relays booking events to Kafka
	w := worker.NewOutboxPoller(outboxRepo, kafkaProd)
	if err := w.Run(ctx); err != nil {
		logger.Error("worker stopped with error", "error", err)
	}

	logger.Info("worker exited")
}
