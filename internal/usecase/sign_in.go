package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/auth"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
)

type SignIn struct {
	accountRepo AccountRepo
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewSignIn(accountRepo AccountRepo, jwtSecret string, tokenTTL time.Duration) *SignIn {
	return &SignIn{
		accountRepo: accountRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

type SignInResult struct {
	Token string          `json:"token"`
	User  account.Account `json:"user"`
}

// Execute verifies credentials and issues an access token. Unknown email
// and wrong password get the same message.
func (uc *SignIn) Execute(ctx context.Context, email, password string) (*SignInResult, error) {
	a, err := uc.accountRepo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, apperror.New(apperror.KindUnauthorized, "Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(apperror.KindUnauthorized, "Invalid email or password")
	}

	token, _, err := auth.GenerateToken(uc.jwtSecret, a.ID, a.Role, uc.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, User: *a}, nil
}
