package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

// In-memory fakes backing the use-case tests. No locking: each test owns
// its own instances.

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// interceptTx runs a hook before the transaction body, standing in for a
// concurrent writer whose transaction commits first.
type interceptTx struct {
	before func()
}

func (t interceptTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.before != nil {
		t.before()
	}
	return fn(ctx)
}

type fakeAccountRepo struct {
	nextID   int64
	accounts map[int64]*account.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[int64]*account.Account{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, a *account.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return apperror.New(apperror.KindConflict, "Email already in use")
		}
	}
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*account.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "User not found")
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	for _, a := range r.accounts {
		if a.Email == strings.ToLower(email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperror.New(apperror.KindNotFound, "User not found")
}

func (r *fakeAccountRepo) List(_ context.Context) ([]account.Account, error) {
	out := make([]account.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, id int64, p account.Patch) (*account.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "User not found")
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return apperror.New(apperror.KindNotFound, "User not found")
	}
	delete(r.accounts, id)
	return nil
}

func (r *fakeAccountRepo) EmailTaken(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, a := range r.accounts {
		if a.Email == email && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeVehicleRepo struct {
	nextID   int64
	vehicles map[int64]*vehicle.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[int64]*vehicle.Vehicle{}}
}

func (r *fakeVehicleRepo) add(v vehicle.Vehicle) *vehicle.Vehicle {
	r.nextID++
	v.ID = r.nextID
	r.vehicles[v.ID] = &v
	return &v
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	for _, existing := range r.vehicles {
		if existing.RegistrationNumber == v.RegistrationNumber {
			return apperror.New(apperror.KindConflict, "Vehicle with this registration number already exists")
		}
	}
	r.nextID++
	v.ID = r.nextID
	v.CreatedAt = time.Now()
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*vehicle.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByIDForUpdate(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVehicleRepo) List(_ context.Context) ([]vehicle.Vehicle, error) {
	out := make([]vehicle.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, id int64, p vehicle.Patch) (*vehicle.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Type != nil {
		v.Type = *p.Type
	}
	if p.RegistrationNumber != nil {
		v.RegistrationNumber = *p.RegistrationNumber
	}
	if p.DailyRentPrice != nil {
		v.DailyRentPrice = *p.DailyRentPrice
	}
	if p.AvailabilityStatus != nil {
		v.AvailabilityStatus = *p.AvailabilityStatus
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.vehicles[id]; !ok {
		return apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) UpdateAvailability(_ context.Context, id int64, status vehicle.Status) error {
	v, ok := r.vehicles[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "Vehicle not found")
	}
	v.AvailabilityStatus = status
	return nil
}

func (r *fakeVehicleRepo) RegistrationTaken(_ context.Context, registration string, excludeID int64) (bool, error) {
	for _, v := range r.vehicles {
		if v.RegistrationNumber == registration && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]*booking.Booking

	// statusErr, when set for a booking id, makes UpdateStatus fail.
	statusErr map[int64]error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  map[int64]*booking.Booking{},
		statusErr: map[int64]error{},
	}
}

func (r *fakeBookingRepo) add(b booking.Booking) *booking.Booking {
	r.nextID++
	b.ID = r.nextID
	r.bookings[b.ID] = &b
	return &b
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	for _, existing := range r.bookings {
		if existing.VehicleID == b.VehicleID && existing.Status == booking.StatusActive {
			return apperror.New(apperror.KindConflict, "Vehicle is not available")
		}
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, "Booking not found")
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*booking.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status booking.Status) error {
	if err, ok := r.statusErr[id]; ok {
		return err
	}
	b, ok := r.bookings[id]
	if !ok {
		return apperror.New(apperror.KindNotFound, "Booking not found")
	}
	if b.Status != booking.StatusActive {
		return apperror.Newf(apperror.KindConflict, "Only active bookings can be %s", status)
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context) ([]booking.AdminView, error) {
	out := make([]booking.AdminView, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, booking.AdminView{Booking: *b})
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, customerID int64) ([]booking.CustomerView, error) {
	var out []booking.CustomerView
	for _, b := range r.bookings {
		if b.CustomerID != customerID {
			continue
		}
		out = append(out, booking.CustomerView{
			ID:            b.ID,
			VehicleID:     b.VehicleID,
			RentStartDate: b.RentStartDate,
			RentEndDate:   b.RentEndDate,
			TotalPrice:    b.TotalPrice,
			Status:        b.Status,
		})
	}
	return out, nil
}

func (r *fakeBookingRepo) ListExpiredActive(_ context.Context, today time.Time) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range r.bookings {
		if b.Status == booking.StatusActive && b.RentEndDate.Before(today) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) HasActiveByVehicle(_ context.Context, vehicleID int64) (bool, error) {
	for _, b := range r.bookings {
		if b.VehicleID == vehicleID && b.Status == booking.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) HasActiveByCustomer(_ context.Context, customerID int64) (bool, error) {
	for _, b := range r.bookings {
		if b.CustomerID == customerID && b.Status == booking.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

type fakeOutboxRepo struct {
	events []*outbox.Event
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *outbox.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) FetchBatch(_ context.Context, limit int) ([]*outbox.Event, error) {
	if limit > len(r.events) {
		limit = len(r.events)
	}
	return r.events[:limit], nil
}

func (r *fakeOutboxRepo) MarkProcessed(_ context.Context, _ []string) error { return nil }

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, _ []string) error { return nil }
