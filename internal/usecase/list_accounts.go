package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type ListAccounts struct {
	accountRepo AccountRepo
}

func NewListAccounts(accountRepo AccountRepo) *ListAccounts {
	return &ListAccounts{accountRepo: accountRepo}
}

func (uc *ListAccounts) Execute(ctx context.Context) ([]account.Account, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []account.Account{}
	}
	return accounts, nil
}
