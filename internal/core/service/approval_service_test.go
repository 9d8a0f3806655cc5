package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

func TestApprovalService_SetApprovalStatus_ForbiddenForNonAdmins(t *testing.T) {
	repo := newStubAccountRepo()
	customer := mustCreate(t, repo, domain.RoleCustomer, "alice", "pw", domain.ApprovalPending)
	svc := NewApprovalService(repo)

	nonAdmins := []domain.Role{
		domain.RoleCustomer,
		domain.RoleFinance,
		domain.RoleEventManager,
		domain.RoleServiceManager,
		domain.RoleDealer,
		domain.RoleStorekeeper,
		domain.RoleSupplier,
	}
	for _, role := range nonAdmins {
		if _, err := svc.SetApprovalStatus(context.Background(), role, customer.ID, domain.ApprovalApproved); err != domain.ErrForbidden {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
		// Forbidden regardless of target existence or status validity.
		if _, err := svc.SetApprovalStatus(context.Background(), role, "no-such-id", "bogus"); err != domain.ErrForbidden {
			t.Fatalf("role %s: expected ErrForbidden for bad target, got %v", role, err)
		}
	}
}

func TestApprovalService_SetApprovalStatus_InvalidStatus(t *testing.T) {
	repo := newStubAccountRepo()
	customer := mustCreate(t, repo, domain.RoleCustomer, "alice", "pw", domain.ApprovalPending)
	svc := NewApprovalService(repo)

	if _, err := svc.SetApprovalStatus(context.Background(), domain.RoleAdmin, customer.ID, "rejected"); err != domain.ErrInvalidApprovalStatus {
		t.Fatalf("expected ErrInvalidApprovalStatus, got %v", err)
	}
}

func TestApprovalService_SetApprovalStatus_NotFound(t *testing.T) {
	repo := newStubAccountRepo()
	// An employee account must not be reachable through the customer workflow.
	employee := mustCreate(t, repo, domain.RoleDealer, "d1", "pw", "")
	svc := NewApprovalService(repo)

	if _, err := svc.SetApprovalStatus(context.Background(), domain.RoleAdmin, "no-such-id", domain.ApprovalApproved); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.SetApprovalStatus(context.Background(), domain.RoleAdmin, employee.ID, domain.ApprovalApproved); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound for employee id, got %v", err)
	}
}

func TestApprovalService_ApproveAndList(t *testing.T) {
	repo := newStubAccountRepo()
	alice := mustCreate(t, repo, domain.RoleCustomer, "alice", "pw", domain.ApprovalPending)
	svc := NewApprovalService(repo)

	pending, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Status: domain.ApprovalPending})
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != alice.ID {
		t.Fatalf("expected [alice], got %+v", pending)
	}

	updated, err := svc.SetApprovalStatus(context.Background(), domain.RoleAdmin, alice.ID, domain.ApprovalApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.ApprovalStatus != domain.ApprovalApproved {
		t.Fatalf("expected approved, got %s", updated.ApprovalStatus)
	}

	approved, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Status: domain.ApprovalApproved})
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved) != 1 || approved[0].ID != alice.ID {
		t.Fatalf("expected [alice] approved, got %+v", approved)
	}

	pending, err = svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Status: domain.ApprovalPending})
	if err != nil {
		t.Fatalf("relist pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending customers, got %+v", pending)
	}
}

func TestApprovalService_ListCustomers_OrderedAndFiltered(t *testing.T) {
	repo := newStubAccountRepo()
	a := mustCreate(t, repo, domain.RoleCustomer, "alice", "pw", domain.ApprovalPending)
	b := mustCreate(t, repo, domain.RoleCustomer, "bob", "pw", domain.ApprovalApproved)
	c := mustCreate(t, repo, domain.RoleCustomer, "carol", "pw", domain.ApprovalPending)
	mustCreate(t, repo, domain.RoleSupplier, "sup", "pw", "")
	svc := NewApprovalService(repo)

	all, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(all))
	}
	if all[0].ID != a.ID || all[1].ID != b.ID || all[2].ID != c.ID {
		t.Fatalf("expected id order %s,%s,%s, got %+v", a.ID, b.ID, c.ID, all)
	}

	if _, err := svc.ListCustomers(context.Background(), ports.ListCustomersFilter{Status: "bogus"}); err != domain.ErrInvalidApprovalStatus {
		t.Fatalf("expected ErrInvalidApprovalStatus, got %v", err)
	}
}

func TestApprovalService_ConcurrentUpdatesSerialize(t *testing.T) {
	repo := newStubAccountRepo()
	customer := mustCreate(t, repo, domain.RoleCustomer, "alice", "pw", domain.ApprovalPending)
	svc := NewApprovalService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		status := domain.ApprovalApproved
		if i%2 == 1 {
			status = domain.ApprovalPending
		}
		wg.Add(1)
		go func(st domain.ApprovalStatus) {
			defer wg.Done()
			if _, err := svc.SetApprovalStatus(context.Background(), domain.RoleAdmin, customer.ID, st); err != nil {
				t.Errorf("concurrent update: %v", err)
			}
		}(status)
	}
	wg.Wait()

	got, err := repo.FindCustomerByID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("reload customer: %v", err)
	}
	// No torn state: the final value is exactly one of the written statuses.
	if got.ApprovalStatus != domain.ApprovalPending && got.ApprovalStatus != domain.ApprovalApproved {
		t.Fatalf("torn approval status: %q", got.ApprovalStatus)
	}
}
