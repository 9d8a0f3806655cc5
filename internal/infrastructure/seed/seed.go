package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// Account is one entry of a seed file. Secrets appear only in the file;
// the store receives a bcrypt hash.
type Account struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
}

type seedFile struct {
	Accounts []Account `yaml:"accounts"`
}

// Seeder provisions admin and employee accounts from a YAML file at deploy
// time. Existing usernames are left untouched.
type Seeder struct {
	repo ports.AccountRepository
}

func NewSeeder(repo ports.AccountRepository) *Seeder {
	return &Seeder{repo: repo}
}

// Apply reads the seed file and creates every account that does not already
// exist. It returns the number of accounts created.
func (s *Seeder) Apply(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	created := 0
	for _, entry := range sf.Accounts {
		if entry.Username == "" || entry.Password == "" {
			return created, fmt.Errorf("seed entry %q: username and password are required", entry.Username)
		}
		role, ok := domain.ParseRole(entry.Role)
		if !ok {
			return created, fmt.Errorf("seed entry %q: unknown role %q", entry.Username, entry.Role)
		}

		if _, err := s.repo.FindByUsername(ctx, role, entry.Username); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return created, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(entry.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, fmt.Errorf("hash secret for %q: %w", entry.Username, err)
		}

		now := time.Now().UTC()
		account := &domain.Account{
			Role:       role,
			Username:   entry.Username,
			SecretHash: string(hash),
			Name:       entry.Name,
			Email:      entry.Email,
			Phone:      entry.Phone,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if role == domain.RoleCustomer {
			account.ApprovalStatus = domain.ApprovalPending
		}

		if _, err := s.repo.Create(ctx, account); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
