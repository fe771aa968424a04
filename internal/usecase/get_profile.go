package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type GetProfile struct {
	accountRepo AccountRepo
}

func NewGetProfile(accountRepo AccountRepo) *GetProfile {
	return &GetProfile{accountRepo: accountRepo}
}

func (uc *GetProfile) Execute(ctx context.Context, accountID int64) (*account.Account, error) {
	return uc.accountRepo.GetByID(ctx, accountID)
}
