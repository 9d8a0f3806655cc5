package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// dummyHash is a bcrypt hash of a throwaway value. A comparison against it is
// burned when the username lookup misses, so unknown usernames and wrong
// secrets take a similar amount of time.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("identity-service-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService verifies presented credentials against the account store.
type AuthService struct {
	repo ports.AccountRepository
}

func NewAuthService(repo ports.AccountRepository) *AuthService {
	return &AuthService{repo: repo}
}

// Authenticate resolves a (role, username, secret) tuple to an account.
// An unknown username and a wrong secret both fail ErrInvalidCredentials;
// the caller cannot tell which part of the tuple was wrong.
func (s *AuthService) Authenticate(ctx context.Context, role, username, secret string) (*domain.Account, error) {
	if role == "" || username == "" || secret == "" {
		return nil, domain.ErrMalformedRequest
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.ErrMalformedRequest
	}

	account, err := s.repo.FindByUsername(ctx, r, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secret)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}
