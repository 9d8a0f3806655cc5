package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

type stubRepo struct {
	accounts map[string]*domain.Account // keyed role/username
}

func newStubRepo() *stubRepo {
	return &stubRepo{accounts: make(map[string]*domain.Account)}
}

func key(role domain.Role, username string) string {
	return string(role) + "/" + username
}

func (r *stubRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	k := key(account.Role, account.Username)
	if _, exists := r.accounts[k]; exists {
		return nil, domain.ErrAccountExists
	}
	clone := *account
	clone.ID = k
	r.accounts[k] = &clone
	return &clone, nil
}

func (r *stubRepo) FindByUsername(_ context.Context, role domain.Role, username string) (*domain.Account, error) {
	if a, ok := r.accounts[key(role, username)]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubRepo) FindCustomerByID(_ context.Context, id string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (r *stubRepo) ListCustomers(_ context.Context, _ ports.ListCustomersFilter) ([]*domain.Account, error) {
	return nil, nil
}

func (r *stubRepo) UpdateApprovalStatus(_ context.Context, _ string, _ domain.ApprovalStatus) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeeder_Apply(t *testing.T) {
	repo := newStubRepo()
	seeder := NewSeeder(repo)

	path := writeSeedFile(t, `
accounts:
  - username: root
    password: rootpw
    role: admin
    name: Root Admin
  - username: d1
    password: x
    role: dealer
`)

	created, err := seeder.Apply(context.Background(), path)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}

	admin, err := repo.FindByUsername(context.Background(), domain.RoleAdmin, "root")
	if err != nil {
		t.Fatalf("seeded admin missing: %v", err)
	}
	if admin.SecretHash == "rootpw" {
		t.Fatalf("secret stored in clear text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.SecretHash), []byte("rootpw")); err != nil {
		t.Fatalf("stored hash does not match secret: %v", err)
	}
}

func TestSeeder_SkipsExisting(t *testing.T) {
	repo := newStubRepo()
	seeder := NewSeeder(repo)

	path := writeSeedFile(t, `
accounts:
  - username: root
    password: rootpw
    role: admin
`)

	if _, err := seeder.Apply(context.Background(), path); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	created, err := seeder.Apply(context.Background(), path)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected 0 created on re-apply, got %d", created)
	}
}

func TestSeeder_RejectsUnknownRole(t *testing.T) {
	seeder := NewSeeder(newStubRepo())

	path := writeSeedFile(t, `
accounts:
  - username: ghost
    password: pw
    role: superuser
`)

	if _, err := seeder.Apply(context.Background(), path); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestSeeder_CustomersStartPending(t *testing.T) {
	repo := newStubRepo()
	seeder := NewSeeder(repo)

	path := writeSeedFile(t, `
accounts:
  - username: alice
    password: pw
    role: customer
`)

	if _, err := seeder.Apply(context.Background(), path); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	alice, err := repo.FindByUsername(context.Background(), domain.RoleCustomer, "alice")
	if err != nil {
		t.Fatalf("seeded customer missing: %v", err)
	}
	if alice.ApprovalStatus != domain.ApprovalPending {
		t.Fatalf("expected pending, got %s", alice.ApprovalStatus)
	}
}
