package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
)

type ListBookings struct {
	bookingRepo BookingRepo
}

func NewListBookings(bookingRepo BookingRepo) *ListBookings {
	return &ListBookings{bookingRepo: bookingRepo}
}

// Execute picks the projection by role: admins see every booking with
// customer and vehicle fields, customers see only their own with the
// customer identity omitted. Newest first, no pagination.
func (uc *ListBookings) Execute(ctx context.Context, callerID int64, role account.Role) (any, error) {
	if role == account.RoleAdmin {
		views, err := uc.bookingRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if views == nil {
			views = []booking.AdminView{}
		}
		return views, nil
	}

	views, err := uc.bookingRepo.ListByCustomer(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []booking.CustomerView{}
	}
	return views, nil
}
