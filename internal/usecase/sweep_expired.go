package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
	"github.com/sinclaire-white/vehicle-renting-server/internal/infrastructure/postgres"
)

type SweepExpired struct {
	txManager   postgres.Transactor
	bookingRepo BookingRepo
	vehicleRepo VehicleRepo
	outboxRepo  outbox.Repository
	now         func() time.Time
}

func NewSweepExpired(
	txManager postgres.Transactor,
	bookingRepo BookingRepo,
	vehicleRepo VehicleRepo,
	outboxRepo outbox.Repository,
) *SweepExpired {
	return &SweepExpired{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		outboxRepo:  outboxRepo,
		now:         time.Now,
	}
}

// Execute auto-returns every active booking whose rental period ended
// before today. Each booking transitions in its own transaction; a failure
// is logged and the batch moves on. The batch as a whole is deliberately
// not atomic.
func (uc *SweepExpired) Execute(ctx context.Context) (processed, failed int, err error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	expired, err := uc.bookingRepo.ListExpiredActive(ctx, today)
	if err != nil {
		return 0, 0, err
	}

	for i := range expired {
		b := expired[i]
		var skipped bool
		txErr := uc.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
			// Re-fetch under lock: the listing is a stale snapshot, and a
			// booking returned or cancelled since then must stay terminal
			// (and its vehicle may already carry a fresh active booking).
			fresh, err := uc.bookingRepo.GetByIDForUpdate(txCtx, b.ID)
			if err != nil {
				return err
			}
			if fresh.Status != booking.StatusActive {
				skipped = true
				return nil
			}

			if err := uc.bookingRepo.UpdateStatus(txCtx, fresh.ID, booking.StatusReturned); err != nil {
				return err
			}
			if err := uc.vehicleRepo.UpdateAvailability(txCtx, fresh.VehicleID, vehicle.StatusAvailable); err != nil {
				return err
			}

			fresh.Status = booking.StatusReturned
			evt, err := newBookingEvent(outbox.EventBookingReturned, fresh, "sweep")
			if err != nil {
				return err
			}
			return uc.outboxRepo.Create(txCtx, evt)
		})
		if txErr != nil {
			slog.Error("sweep: booking transition failed", "booking_id", b.ID, "error", txErr)
			failed++
			continue
		}
		if skipped {
			continue
		}
		processed++
	}

	return processed, failed, nil
}
