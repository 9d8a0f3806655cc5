package ports

import (
	"context"

	"github.com/rentassist/identity-service/internal/core/domain"
)

// AuthService turns a (role, username, secret) tuple into an authenticated
// account or a typed failure. Pure verification; no retries, no side effects.
type AuthService interface {
	Authenticate(ctx context.Context, role, username, secret string) (*domain.Account, error)
}

// RegisterCustomerInput carries the fields collected at customer sign-up.
type RegisterCustomerInput struct {
	Username string
	Secret   string
	Name     string
	Email    string
	Phone    string
}

// RegistrationService creates customer accounts. New customers start pending.
type RegistrationService interface {
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Account, error)
}
