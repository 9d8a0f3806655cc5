package service

import (
	"context"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// ApprovalService governs the approval workflow on customer accounts. The
// only transition the product exercises is pending → approved, performed by
// an administrator; the service accepts either status as a target but never
// flips one on its own.
type ApprovalService struct {
	repo ports.AccountRepository
}

func NewApprovalService(repo ports.AccountRepository) *ApprovalService {
	return &ApprovalService{repo: repo}
}

// ListCustomers returns customer accounts ordered by id, optionally filtered
// by approval status.
func (s *ApprovalService) ListCustomers(ctx context.Context, filter ports.ListCustomersFilter) ([]*domain.Account, error) {
	if filter.Status != "" {
		if _, ok := domain.ParseApprovalStatus(string(filter.Status)); !ok {
			return nil, domain.ErrInvalidApprovalStatus
		}
	}
	return s.repo.ListCustomers(ctx, filter)
}

// SetApprovalStatus transitions a customer's approval status. The role check
// runs first: a non-admin requester fails Forbidden regardless of whether the
// target exists or the status is valid.
func (s *ApprovalService) SetApprovalStatus(ctx context.Context, requesterRole domain.Role, customerID string, status domain.ApprovalStatus) (*domain.Account, error) {
	if !requesterRole.CanApproveCustomers() {
		return nil, domain.ErrForbidden
	}
	if _, ok := domain.ParseApprovalStatus(string(status)); !ok {
		return nil, domain.ErrInvalidApprovalStatus
	}
	if customerID == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.UpdateApprovalStatus(ctx, customerID, status)
}
