package domain

import "time"

// Role is the fixed category of a principal. It determines which operations
// an authenticated account may perform and never changes after creation.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleCustomer       Role = "customer"
	RoleFinance        Role = "finance"
	RoleEventManager   Role = "event_manager"
	RoleServiceManager Role = "service_manager"
	RoleDealer         Role = "dealer"
	RoleStorekeeper    Role = "storekeeper"
	RoleSupplier       Role = "supplier"
)

var allRoles = map[Role]struct{}{
	RoleAdmin:          {},
	RoleCustomer:       {},
	RoleFinance:        {},
	RoleEventManager:   {},
	RoleServiceManager: {},
	RoleDealer:         {},
	RoleStorekeeper:    {},
	RoleSupplier:       {},
}

// ParseRole validates a role string received from a client.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := allRoles[r]
	return r, ok
}

// CanApproveCustomers reports whether the role may advance a customer's
// approval status. Only administrators hold this capability.
func (r Role) CanApproveCustomers() bool {
	return r == RoleAdmin
}

// ApprovalStatus is the workflow state on a customer account controlling
// eligibility for rental actions. Administrator-controlled.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// ParseApprovalStatus validates an approval status string.
func ParseApprovalStatus(s string) (ApprovalStatus, bool) {
	switch st := ApprovalStatus(s); st {
	case ApprovalPending, ApprovalApproved:
		return st, true
	default:
		return "", false
	}
}

// Account models a principal. Username is unique within its role, and the
// role is immutable once the account exists. ApprovalStatus is only
// meaningful for customer accounts; new customers start pending.
type Account struct {
	ID             string         `json:"id"`
	Role           Role           `json:"role"`
	Username       string         `json:"username"`
	SecretHash     string         `json:"-"`
	Name           string         `json:"name,omitempty"`
	Email          string         `json:"email,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// IsCustomer reports whether the account participates in the approval workflow.
func (a *Account) IsCustomer() bool {
	return a.Role == RoleCustomer
}
