package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
)

type DeleteVehicle struct {
	txManager   postgres.Transactor
	vehicleRepo VehicleRepo
	bookingRepo BookingRepo
}

func NewDeleteVehicle(txManager postgres.Transactor, vehicleRepo VehicleRepo, bookingRepo BookingRepo) *DeleteVehicle {
	return &DeleteVehicle{
		txManager:   txManager,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
	}
}

// Execute deletes a vehicle unless it has an active booking. The check and
// the delete share a transaction with the row locked so a concurrent
// createBooking cannot slip in between.
func (uc *DeleteVehicle) Execute(ctx context.Context, vehicleID int64) error {
	return uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, vehicleID); err != nil {
			return err
		}

		hasActive, err := uc.bookingRepo.HasActiveByVehicle(txCtx, vehicleID)
		if err != nil {
			return err
		}
		if hasActive {
			return apperror.New(apperror.KindConflict, "Cannot delete vehicle with active bookings")
		}

		return uc.vehicleRepo.Delete(txCtx, vehicleID)
	})
}
