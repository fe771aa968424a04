package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const sql = `
		INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := pick(ctx, r.pool).QueryRow(ctx, sql,
		b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		// The partial unique index rejects a second active booking for the
		// same vehicle even if the availability check raced.
		if isUniqueViolation(err) {
			return apperror.New(apperror.KindConflict, "Vehicle is not available")
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate locks the booking row for the rest of the transaction so
// concurrent transitions serialize on it.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.get(ctx, id, true)
}

func (r *BookingRepository) get(ctx context.Context, id int64, forUpdate bool) (*booking.Booking, error) {
	sql := `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at
		FROM bookings
		WHERE id = $1
	`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var b booking.Booking
	err := pick(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "Booking not found")
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &b, nil
}

// UpdateStatus only moves active bookings; cancelled and returned are
// terminal. Callers fetch the row first, so zero affected rows means a
// concurrent transition won the race.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status booking.Status) error {
	const sql = `UPDATE bookings SET status = $2 WHERE id = $1 AND status = 'active'`

	cmdTag, err := pick(ctx, r.pool).Exec(ctx, sql, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.Newf(apperror.KindConflict, "Only active bookings can be %s", status)
	}
	return nil
}

// ListAll is the admin projection: every booking joined with customer and
// vehicle identifying fields, newest first.
func (r *BookingRepository) ListAll(ctx context.Context) ([]booking.AdminView, error) {
	const sql = `
		SELECT
			b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date,
			b.total_price, b.status, b.created_at,
			a.name, a.email,
			v.vehicle_name, v.registration_number
		FROM bookings b
		JOIN accounts a ON b.customer_id = a.id
		JOIN vehicles v ON b.vehicle_id = v.id
		ORDER BY b.id DESC
	`

	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var views []booking.AdminView
	for rows.Next() {
		var view booking.AdminView
		err := rows.Scan(
			&view.ID, &view.CustomerID, &view.VehicleID, &view.RentStartDate, &view.RentEndDate,
			&view.TotalPrice, &view.Status, &view.CreatedAt,
			&view.Customer.Name, &view.Customer.Email,
			&view.Vehicle.Name, &view.Vehicle.RegistrationNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		views = append(views, view)
	}

	return views, rows.Err()
}

// ListByCustomer is the customer projection: own bookings only, customer
// identity omitted, newest first.
func (r *BookingRepository) ListByCustomer(ctx context.Context, customerID int64) ([]booking.CustomerView, error) {
	const sql = `
		SELECT
			b.id, b.vehicle_id, b.rent_start_date, b.rent_end_date, b.total_price, b.status,
			v.vehicle_name, v.registration_number, v.type
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		WHERE b.customer_id = $1
		ORDER BY b.id DESC
	`

	rows, err := r.pool.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by customer: %w", err)
	}
	defer rows.Close()

	var views []booking.CustomerView
	for rows.Next() {
		var view booking.CustomerView
		err := rows.Scan(
			&view.ID, &view.VehicleID, &view.RentStartDate, &view.RentEndDate, &view.TotalPrice, &view.Status,
			&view.Vehicle.Name, &view.Vehicle.RegistrationNumber, &view.Vehicle.Type,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		views = append(views, view)
	}

	return views, rows.Err()
}

// ListExpiredActive returns active bookings whose rental period ended
// before the given day. Fed to the sweep.
func (r *BookingRepository) ListExpiredActive(ctx context.Context, today time.Time) ([]booking.Booking, error) {
	const sql = `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at
		FROM bookings
		WHERE status = 'active' AND rent_end_date < $1
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, sql, today)
	if err != nil {
		return nil, fmt.Errorf("list expired bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		var b booking.Booking
		err := rows.Scan(&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate, &b.TotalPrice, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *BookingRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM bookings WHERE vehicle_id = $1 AND status = 'active')`

	var has bool
	if err := pick(ctx, r.pool).QueryRow(ctx, sql, vehicleID).Scan(&has); err != nil {
		return false, fmt.Errorf("check active bookings by vehicle: %w", err)
	}
	return has, nil
}

func (r *BookingRepository) HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM bookings WHERE customer_id = $1 AND status = 'active')`

	var has bool
	if err := pick(ctx, r.pool).QueryRow(ctx, sql, customerID).Scan(&has); err != nil {
		return false, fmt.Errorf("check active bookings by customer: %w", err)
	}
	return has, nil
}
