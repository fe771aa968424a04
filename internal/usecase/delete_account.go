package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type DeleteAccount struct {
	accountRepo AccountRepo
	bookingRepo BookingRepo
}

func NewDeleteAccount(accountRepo AccountRepo, bookingRepo BookingRepo) *DeleteAccount {
	return &DeleteAccount{
		accountRepo: accountRepo,
		bookingRepo: bookingRepo,
	}
}

func (uc *DeleteAccount) Execute(ctx context.Context, accountID, callerID int64, callerRole account.Role) error {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return err
	}
	if callerID != accountID && callerRole != account.RoleAdmin {
		return apperror.New(apperror.KindForbidden, "Unauthorized to delete this user")
	}

	hasActive, err := uc.bookingRepo.HasActiveByCustomer(ctx, accountID)
	if err != nil {
		return err
	}
	if hasActive {
		return apperror.New(apperror.KindConflict, "Cannot delete user with active bookings")
	}

	return uc.accountRepo.Delete(ctx, accountID)
}
