package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/api"
	"github.com/sinclaire-white/vehicle-renting-server/internal/config"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
	redisInfra "github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/redis"
	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
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

	// Redis
	redisClient, err := redisInfra.NewClient(ctx, redisInfra.Config{
		Addr: cfg.Redis.Addr,
	})
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(pgPool)
	vehicleRepo := postgres.NewVehicleRepository(pgPool)
	bookingRepo := postgres.NewBookingRepository(pgPool)
	outboxRepo := postgres.NewOutboxRepository(pgPool)
	txManager := postgres.NewTxManager(pgPool)

	// UseCases
	signUpUC := usecase.NewSignUp(accountRepo)
	signInUC := usecase.NewSignIn(accountRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileUC := usecase.NewGetProfile(accountRepo)
	listAccountsUC := usecase.NewListAccounts(accountRepo)
	updateAccountUC := usecase.NewUpdateAccount(accountRepo)
	deleteAccountUC := usecase.NewDeleteAccount(accountRepo, bookingRepo)

	createVehicleUC := usecase.NewCreateVehicle(vehicleRepo)
	listVehiclesUC := usecase.NewListVehicles(vehicleRepo)
	getVehicleUC := usecase.NewGetVehicle(redisClient, vehicleRepo)
	updateVehicleUC := usecase.NewUpdateVehicle(vehicleRepo)
	deleteVehicleUC := usecase.NewDeleteVehicle(txManager, vehicleRepo, bookingRepo)

	createBookingUC := usecase.NewCreateBooking(txManager, vehicleRepo, bookingRepo, outboxRepo)
	listBookingsUC := usecase.NewListBookings(bookingRepo)
	updateBookingStatusUC := usecase.NewUpdateBookingStatus(txManager, bookingRepo, vehicleRepo, outboxRepo)

	// REST API Handlers
	authH := api.NewAuthHandlers(signUpUC, signInUC)
	accountH := api.NewAccountHandlers(profileUC, listAccountsUC, updateAccountUC, deleteAccountUC)
	vehicleH := api.NewVehicleHandlers(createVehicleUC, listVehiclesUC, getVehicleUC, updateVehicleUC, deleteVehicleUC)
	bookingH := api.NewBookingHandlers(createBookingUC, listBookingsUC, updateBookingStatusUC)

	apiHandler := api.NewRouter(authH, vehicleH, bookingH, accountH, cfg.Auth.JWTSecret, redisClient)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: apiHandler,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exiting")
}
