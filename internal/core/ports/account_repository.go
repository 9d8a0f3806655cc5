package ports

import (
	"context"

	"github.com/rentassist/identity-service/internal/core/domain"
)

// ListCustomersFilter carries the query parameters for listing customers.
type ListCustomersFilter struct {
	// Status filters by approval status when non-empty.
	Status domain.ApprovalStatus
}

// AccountRepository defines persistence operations for accounts.
// Usernames are unique within a role; lookups are always role-scoped.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByUsername(ctx context.Context, role domain.Role, username string) (*domain.Account, error)
	FindCustomerByID(ctx context.Context, id string) (*domain.Account, error)
	// ListCustomers returns customer accounts matching filter, ordered by id.
	// The sequence is finite and re-enumerable; an empty result is not an error.
	ListCustomers(ctx context.Context, filter ListCustomersFilter) ([]*domain.Account, error)
	// UpdateApprovalStatus atomically sets the approval status of a single
	// customer record and returns the updated account. Concurrent updates on
	// the same id serialize in the store.
	UpdateApprovalStatus(ctx context.Context, id string, status domain.ApprovalStatus) (*domain.Account, error)
}
