package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

type VehicleRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

const vehicleColumns = `id, vehicle_name, type, registration_number, daily_rent_price, availability_status, created_at`

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	const sql = `
		INSERT INTO vehicles (vehicle_name, type, registration_number, daily_rent_price, availability_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := pick(ctx, r.pool).QueryRow(ctx, sql,
		v.Name, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.AvailabilityStatus,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.New(apperror.KindConflict, "Vehicle with this registration number already exists")
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}

	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate locks the vehicle row for the rest of the surrounding
// transaction. Concurrent booking attempts against the same vehicle
// serialize on this lock.
func (r *VehicleRepository) GetByIDForUpdate(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return r.get(ctx, id, true)
}

func (r *VehicleRepository) get(ctx context.Context, id int64, forUpdate bool) (*vehicle.Vehicle, error) {
	sql := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	if forUpdate {
		sql += ` FOR UPDATE`
	}

	var v vehicle.Vehicle
	err := pick(ctx, r.pool).QueryRow(ctx, sql, id).Scan(
		&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "Vehicle not found")
		}
		return nil, fmt.Errorf("get vehicle by id: %w", err)
	}

	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// Update merges non-nil patch fields into the row and returns the result.
func (r *VehicleRepository) Update(ctx context.Context, id int64, p vehicle.Patch) (*vehicle.Vehicle, error) {
	const sql = `
		UPDATE vehicles SET
			vehicle_name = COALESCE($1, vehicle_name),
			type = COALESCE($2, type),
			registration_number = COALESCE($3, registration_number),
			daily_rent_price = COALESCE($4, daily_rent_price),
			availability_status = COALESCE($5, availability_status)
		WHERE id = $6
		RETURNING ` + vehicleColumns + `
	`

	var v vehicle.Vehicle
	err := pick(ctx, r.pool).QueryRow(ctx, sql,
		p.Name, p.Type, p.RegistrationNumber, p.DailyRentPrice, p.AvailabilityStatus, id,
	).Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperror.New(apperror.KindNotFound, "Vehicle not found")
		}
		if isUniqueViolation(err) {
			return nil, apperror.New(apperror.KindConflict, "Vehicle with this registration number already exists")
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	return &v, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := pick(ctx, r.pool).Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	return nil
}

// UpdateAvailability flips the availability flag; always called inside the
// same transaction as the booking status write.
func (r *VehicleRepository) UpdateAvailability(ctx context.Context, id int64, status vehicle.Status) error {
	const sql = `UPDATE vehicles SET availability_status = $2 WHERE id = $1`

	cmdTag, err := pick(ctx, r.pool).Exec(ctx, sql, id, status)
	if err != nil {
		return fmt.Errorf("update vehicle availability: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	return nil
}

// RegistrationTaken reports whether another vehicle already carries the
// registration number. The match is exact and case-sensitive.
func (r *VehicleRepository) RegistrationTaken(ctx context.Context, registration string, excludeID int64) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM vehicles WHERE registration_number = $1 AND id != $2)`

	var taken bool
	if err := r.pool.QueryRow(ctx, sql, registration, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("check registration number: %w", err)
	}
	return taken, nil
}
