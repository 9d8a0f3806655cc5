package ports

import (
	"context"

	"github.com/rentassist/identity-service/internal/core/domain"
)

// ApprovalService governs the approval status of customer accounts.
type ApprovalService interface {
	// ListCustomers returns customer accounts ordered by id. A zero-value
	// filter returns every customer.
	ListCustomers(ctx context.Context, filter ListCustomersFilter) ([]*domain.Account, error)
	// SetApprovalStatus transitions a customer's approval status. Only an
	// admin requester may call it; the update is atomic per record.
	SetApprovalStatus(ctx context.Context, requesterRole domain.Role, customerID string, status domain.ApprovalStatus) (*domain.Account, error)
}
