package usecase

import (
	"context"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

// Repository contracts consumed by the use cases. Implemented by the
// postgres repositories; faked in tests.

type AccountRepo interface {
	Create(ctx context.Context, a *account.Account) error
	GetByID(ctx context.Context, id int64) (*account.Account, error)
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	List(ctx context.Context) ([]account.Account, error)
	Update(ctx context.Context, id int64, p account.Patch) (*account.Account, error)
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}

type VehicleRepo interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	GetByID(ctx context.Context, id int64) (*vehicle.Vehicle, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*vehicle.Vehicle, error)
	List(ctx context.Context) ([]vehicle.Vehicle, error)
	Update(ctx context.Context, id int64, p vehicle.Patch) (*vehicle.Vehicle, error)
	Delete(ctx context.Context, id int64) error
	UpdateAvailability(ctx context.Context, id int64, status vehicle.Status) error
	RegistrationTaken(ctx context.Context, registration string, excludeID int64) (bool, error)
}

type BookingRepo interface {
	Create(ctx context.Context, b *booking.Booking) error
	GetByID(ctx context.Context, id int64) (*booking.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status booking.Status) error
	ListAll(ctx context.Context) ([]booking.AdminView, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]booking.CustomerView, error)
	ListExpiredActive(ctx context.Context, today time.Time) ([]booking.Booking, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
	HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error)
}
