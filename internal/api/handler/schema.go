package handler

import (
	"time"

	"github.com/rentassist/identity-service/internal/core/domain"
)

type loginRequest struct {
	Role     string `json:"role"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   accountResponse `json:"account"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

type approvalRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved"`
}

// accountResponse is the public view of an account. The secret hash never
// leaves the service.
type accountResponse struct {
	ID             string `json:"id"`
	Role           string `json:"role"`
	Username       string `json:"username"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:             a.ID,
		Role:           string(a.Role),
		Username:       a.Username,
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		ApprovalStatus: string(a.ApprovalStatus),
	}
}
