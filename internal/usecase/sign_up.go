package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type SignUp struct {
	accountRepo AccountRepo
}

func NewSignUp(accountRepo AccountRepo) *SignUp {
	return &SignUp{accountRepo: accountRepo}
}

type SignUpParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (uc *SignUp) Execute(ctx context.Context, params SignUpParams) (*account.Account, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" || params.Phone == "" {
		return nil, apperror.New(apperror.KindInvalidInput, "All fields are required")
	}
	if len(params.Password) < 6 {
		return nil, apperror.New(apperror.KindInvalidInput, "Password must be at least 6 characters")
	}

	role := account.RoleCustomer
	if params.Role != "" {
		var err error
		role, err = account.ParseRole(params.Role)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "Role must be admin or customer", err)
		}
	}

	email := strings.ToLower(params.Email)

	taken, err := uc.accountRepo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.New(apperror.KindConflict, "Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), 10)
	if err != nil {
		return nil, err
	}

	a := &account.Account{
		Name:         params.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        params.Phone,
		Role:         role,
	}
	if err := uc.accountRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}
