package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// NewClient connects with a few retries so the service survives the
// database coming up after it.
func NewClient(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	var pool *pgxpool.Pool
	var err error

	for i := 0; i < 5; i++ {
		pool, err = pgxpool.New(ctx, dsn)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		slog.Warn("postgres connect failed, retrying in 2s", "attempt", i+1, "error", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres after retries: %w", err)
	}

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		phone VARCHAR(20) NOT NULL,
		role VARCHAR(20) NOT NULL CHECK (role IN ('admin', 'customer')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGSERIAL PRIMARY KEY,
		vehicle_name VARCHAR(255) NOT NULL,
		type VARCHAR(20) NOT NULL CHECK (type IN ('car', 'bike', 'van', 'SUV')),
		registration_number VARCHAR(50) NOT NULL UNIQUE,
		daily_rent_price DECIMAL(10, 2) NOT NULL CHECK (daily_rent_price > 0),
		availability_status VARCHAR(20) NOT NULL CHECK (availability_status IN ('available', 'booked')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		rent_start_date DATE NOT NULL,
		rent_end_date DATE NOT NULL,
		total_price DECIMAL(10, 2) NOT NULL,
		status VARCHAR(20) NOT NULL CHECK (status IN ('active', 'cancelled', 'returned')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	// One active booking per vehicle; backs up the FOR UPDATE check under
	// concurrent createBooking calls.
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_one_active_per_vehicle
		ON bookings (vehicle_id) WHERE status = 'active'`,
	`CREATE TABLE IF NOT EXISTS outbox (
		id UUID PRIMARY KEY,
		event_type VARCHAR(64) NOT NULL,
		payload JSONB NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'new',
		correlation_id TEXT,
		producer VARCHAR(64),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
