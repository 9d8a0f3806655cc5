package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// RegistrationService creates customer accounts. Admin and employee accounts
// are provisioned out of band (see cmd/seed); customers self-register here
// and arrive pending until an administrator approves them.
type RegistrationService struct {
	repo ports.AccountRepository
}

func NewRegistrationService(repo ports.AccountRepository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

func (s *RegistrationService) RegisterCustomer(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Account, error) {
	if input.Username == "" || input.Secret == "" {
		return nil, domain.ErrMalformedRequest
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Role:           domain.RoleCustomer,
		Username:       input.Username,
		SecretHash:     string(hash),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		ApprovalStatus: domain.ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return s.repo.Create(ctx, account)
}
