package usecase

import (
	"context"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
)

type UpdateBookingStatus struct {
	txManager   postgres.Transactor
	bookingRepo BookingRepo
	vehicleRepo VehicleRepo
	outboxRepo  outbox.Repository
	now         func() time.Time
}

func NewUpdateBookingStatus(
	txManager postgres.Transactor,
	bookingRepo BookingRepo,
	vehicleRepo VehicleRepo,
	outboxRepo outbox.Repository,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		outboxRepo:  outboxRepo,
		now:         time.Now,
	}
}

type UpdateBookingStatusParams struct {
	BookingID    int64
	TargetStatus booking.Status
	CallerID     int64
	CallerRole   account.Role
}

// Execute transitions a booking to cancelled or returned. The booking row
// is locked and re-validated inside the transaction, so a concurrent
// transition cannot move a booking out of a terminal status; the status
// write and the vehicle availability write then share that transaction.
func (uc *UpdateBookingStatus) Execute(ctx context.Context, params UpdateBookingStatusParams) (*BookingResult, error) {
	var result *BookingResult
	err := uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookingRepo.GetByIDForUpdate(txCtx, params.BookingID)
		if err != nil {
			return err
		}

		if !booking.CanTransition(params.CallerRole, params.CallerID, b, params.TargetStatus) {
			return apperror.New(apperror.KindForbidden, forbiddenMessage(params.TargetStatus))
		}
		if b.Status != booking.StatusActive {
			return apperror.Newf(apperror.KindConflict, "Only active bookings can be %s", params.TargetStatus)
		}
		if params.TargetStatus == booking.StatusCancelled && !b.RentStartDate.After(uc.now()) {
			return apperror.New(apperror.KindConflict, "Cannot cancel bookings that have started")
		}

		eventType := outbox.EventBookingCancelled
		if params.TargetStatus == booking.StatusReturned {
			eventType = outbox.EventBookingReturned
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, b.ID, params.TargetStatus); err != nil {
			return err
		}
		if err := uc.vehicleRepo.UpdateAvailability(txCtx, b.VehicleID, vehicle.StatusAvailable); err != nil {
			return err
		}

		b.Status = params.TargetStatus
		evt, err := newBookingEvent(eventType, b, "api")
		if err != nil {
			return err
		}
		if err := uc.outboxRepo.Create(txCtx, evt); err != nil {
			return err
		}

		result = &BookingResult{Booking: *b}
		if params.TargetStatus == booking.StatusReturned {
			result.Vehicle = &booking.VehicleSnapshot{
				AvailabilityStatus: string(vehicle.StatusAvailable),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func forbiddenMessage(target booking.Status) string {
	if target == booking.StatusReturned {
		return "Only admins can mark bookings as returned"
	}
	return "You can only cancel your own bookings"
}
