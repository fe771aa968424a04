package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

func TestSweepExpired(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	bookingRepo := newFakeBookingRepo()
	outboxRepo := &fakeOutboxRepo{}
	uc := NewSweepExpired(fakeTx{}, bookingRepo, vehicleRepo, outboxRepo)
	uc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 30, 0, 0, time.UTC) }

	v1 := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})
	v2 := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})
	v3 := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})

	// Ended last week: expired.
	expired := bookingRepo.add(booking.Booking{
		CustomerID:  1,
		VehicleID:   v1.ID,
		RentEndDate: time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		Status:      booking.StatusActive,
	})
	// Ends today: not yet expired.
	current := bookingRepo.add(booking.Booking{
		CustomerID:  2,
		VehicleID:   v2.ID,
		RentEndDate: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
		Status:      booking.StatusActive,
	})
	// Ended long ago but already cancelled: out of scope.
	cancelled := bookingRepo.add(booking.Booking{
		CustomerID:  3,
		VehicleID:   v3.ID,
		RentEndDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      booking.StatusCancelled,
	})

	processed, failed, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if processed != 1 || failed != 0 {
		t.Fatalf("expected 1 processed / 0 failed, got %d / %d", processed, failed)
	}

	b, _ := bookingRepo.GetByID(context.Background(), expired.ID)
	if b.Status != booking.StatusReturned {
		t.Fatalf("expired booking should be returned, got %s", b.Status)
	}
	sv, _ := vehicleRepo.GetByID(context.Background(), v1.ID)
	if sv.AvailabilityStatus != vehicle.StatusAvailable {
		t.Fatalf("expired booking's vehicle should be released, got %s", sv.AvailabilityStatus)
	}

	b, _ = bookingRepo.GetByID(context.Background(), current.ID)
	if b.Status != booking.StatusActive {
		t.Fatalf("booking ending today must stay active, got %s", b.Status)
	}
	b, _ = bookingRepo.GetByID(context.Background(), cancelled.ID)
	if b.Status != booking.StatusCancelled {
		t.Fatalf("cancelled booking must stay cancelled, got %s", b.Status)
	}

	if len(outboxRepo.events) != 1 || outboxRepo.events[0].EventType != outbox.EventBookingReturned {
		t.Fatalf("expected one BookingReturned event, got %+v", outboxRepo.events)
	}
	if outboxRepo.events[0].Producer != "sweep" {
		t.Fatalf("sweep events should carry the sweep producer, got %s", outboxRepo.events[0].Producer)
	}
}

func TestSweepExpiredOneFailureDoesNotBlockOthers(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	bookingRepo := newFakeBookingRepo()
	uc := NewSweepExpired(fakeTx{}, bookingRepo, vehicleRepo, &fakeOutboxRepo{})
	uc.now = func() time.Time { return time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC) }

	v1 := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})
	v2 := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})

	ended := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	broken := bookingRepo.add(booking.Booking{CustomerID: 1, VehicleID: v1.ID, RentEndDate: ended, Status: booking.StatusActive})
	healthy := bookingRepo.add(booking.Booking{CustomerID: 2, VehicleID: v2.ID, RentEndDate: ended, Status: booking.StatusActive})

	bookingRepo.statusErr[broken.ID] = errors.New("deadlock detected")

	processed, failed, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if processed != 1 || failed != 1 {
		t.Fatalf("expected 1 processed / 1 failed, got %d / %d", processed, failed)
	}

	b, _ := bookingRepo.GetByID(context.Background(), healthy.ID)
	if b.Status != booking.StatusReturned {
		t.Fatalf("healthy booking should still be swept, got %s", b.Status)
	}
}

func TestSweepSkipsBookingTransitionedConcurrently(t *testing.T) {
	vehicleRepo := newFakeVehicleRepo()
	bookingRepo := newFakeBookingRepo()
	outboxRepo := &fakeOutboxRepo{}

	v := vehicleRepo.add(vehicle.Vehicle{AvailabilityStatus: vehicle.StatusBooked})
	stale := bookingRepo.add(booking.Booking{
		CustomerID:  1,
		VehicleID:   v.ID,
		RentEndDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:      booking.StatusActive,
	})

	// Between the sweep's listing and its per-booking transaction, an admin
	// returns the booking and a new customer books the vehicle again.
	tx := interceptTx{before: func() {
		bookingRepo.bookings[stale.ID].Status = booking.StatusReturned
		bookingRepo.add(booking.Booking{
			CustomerID:  2,
			VehicleID:   v.ID,
			RentEndDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			Status:      booking.StatusActive,
		})
		vehicleRepo.vehicles[v.ID].AvailabilityStatus = vehicle.StatusBooked
	}}

	uc := NewSweepExpired(tx, bookingRepo, vehicleRepo, outboxRepo)
	uc.now = func() time.Time { return time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC) }

	processed, failed, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if processed != 0 || failed != 0 {
		t.Fatalf("concurrently transitioned booking must be skipped, got %d / %d", processed, failed)
	}

	sv, _ := vehicleRepo.GetByID(context.Background(), v.ID)
	if sv.AvailabilityStatus != vehicle.StatusBooked {
		t.Fatalf("vehicle with a fresh active booking must stay booked, got %s", sv.AvailabilityStatus)
	}
	if len(outboxRepo.events) != 0 {
		t.Fatalf("no event may be written for a skipped booking, got %+v", outboxRepo.events)
	}
}

func TestSweepExpiredNothingToDo(t *testing.T) {
	uc := NewSweepExpired(fakeTx{}, newFakeBookingRepo(), newFakeVehicleRepo(), &fakeOutboxRepo{})

	processed, failed, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if processed != 0 || failed != 0 {
		t.Fatalf("expected nothing processed, got %d / %d", processed, failed)
	}
}
