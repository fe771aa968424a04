package usecase

import (
	"context"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
)

type CreateBooking struct {
	txManager   postgres.Transactor
	vehicleRepo VehicleRepo
	bookingRepo BookingRepo
	outboxRepo  outbox.Repository
}

func NewCreateBooking(
	txManager postgres.Transactor,
	vehicleRepo VehicleRepo,
	bookingRepo BookingRepo,
	outboxRepo outbox.Repository,
) *CreateBooking {
	return &CreateBooking{
		txManager:   txManager,
		vehicleRepo: vehicleRepo,
		bookingRepo: bookingRepo,
		outboxRepo:  outboxRepo,
	}
}

type CreateBookingParams struct {
	CustomerID    int64
	VehicleID     int64
	RentStartDate time.Time
	RentEndDate   time.Time
}

// BookingResult is a booking enriched with a read-only vehicle snapshot.
type BookingResult struct {
	booking.Booking
	Vehicle *booking.VehicleSnapshot `json:"vehicle,omitempty"`
}

// Execute creates a booking against an available vehicle. The availability
// check, booking insert and vehicle flip run in one transaction with the
// vehicle row locked, so two concurrent calls against the same vehicle
// cannot both succeed.
func (uc *CreateBooking) Execute(ctx context.Context, params CreateBookingParams) (*BookingResult, error) {
	if !params.RentEndDate.After(params.RentStartDate) {
		return nil, apperror.New(apperror.KindInvalidInput, "End date must be after start date")
	}

	var result *BookingResult
	err := uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		v, err := uc.vehicleRepo.GetByIDForUpdate(txCtx, params.VehicleID)
		if err != nil {
			return err
		}
		if v.AvailabilityStatus == vehicle.StatusBooked {
			return apperror.New(apperror.KindConflict, "Vehicle is not available")
		}

		days := booking.RentalDays(params.RentStartDate, params.RentEndDate)
		b := &booking.Booking{
			CustomerID:    params.CustomerID,
			VehicleID:     params.VehicleID,
			RentStartDate: params.RentStartDate,
			RentEndDate:   params.RentEndDate,
			TotalPrice:    float64(days) * v.DailyRentPrice,
			Status:        booking.StatusActive,
		}

		if err := uc.bookingRepo.Create(txCtx, b); err != nil {
			return err
		}
		if err := uc.vehicleRepo.UpdateAvailability(txCtx, v.ID, vehicle.StatusBooked); err != nil {
			return err
		}

		evt, err := newBookingEvent(outbox.EventBookingCreated, b, "api")
		if err != nil {
			return err
		}
		if err := uc.outboxRepo.Create(txCtx, evt); err != nil {
			return err
		}

		result = &BookingResult{
			Booking: *b,
			Vehicle: &booking.VehicleSnapshot{
				Name:           v.Name,
				DailyRentPrice: v.DailyRentPrice,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
