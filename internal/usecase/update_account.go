package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type UpdateAccount struct {
	accountRepo AccountRepo
}

func NewUpdateAccount(accountRepo AccountRepo) *UpdateAccount {
	return &UpdateAccount{accountRepo: accountRepo}
}

// UpdateAccountParams carries a partial update; nil fields stay unchanged.
type UpdateAccountParams struct {
	AccountID  int64
	CallerID   int64
	CallerRole account.Role
	Name       *string
	Email      *string
	Password   *string
	Phone      *string
	Role       *string
}

func (uc *UpdateAccount) Execute(ctx context.Context, params UpdateAccountParams) (*account.Account, error) {
	if _, err := uc.accountRepo.GetByID(ctx, params.AccountID); err != nil {
		return nil, err
	}
	if params.CallerID != params.AccountID && params.CallerRole != account.RoleAdmin {
		return nil, apperror.New(apperror.KindForbidden, "Unauthorized to update this user")
	}

	patch := account.Patch{
		Name:  params.Name,
		Phone: params.Phone,
	}

	if params.Email != nil {
		email := strings.ToLower(*params.Email)
		taken, err := uc.accountRepo.EmailTaken(ctx, email, params.AccountID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.New(apperror.KindConflict, "Email already in use")
		}
		patch.Email = &email
	}

	if params.Role != nil {
		if params.CallerRole != account.RoleAdmin {
			return nil, apperror.New(apperror.KindForbidden, "Only admin can update role")
		}
		role, err := account.ParseRole(*params.Role)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "Role must be admin or customer", err)
		}
		patch.Role = &role
	}

	if params.Password != nil {
		if len(*params.Password) < 6 {
			return nil, apperror.New(apperror.KindInvalidInput, "Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), 10)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		patch.PasswordHash = &hashStr
	}

	return uc.accountRepo.Update(ctx, params.AccountID, patch)
}
