package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentassist/identity-service/internal/api/metrics"
	"github.com/rentassist/identity-service/internal/api/middleware"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

// CustomerHandler exposes the admin-facing approval workflow.
type CustomerHandler struct {
	approval ports.ApprovalService
	repo     ports.AccountRepository
}

func NewCustomerHandler(approval ports.ApprovalService, repo ports.AccountRepository) *CustomerHandler {
	return &CustomerHandler{approval: approval, repo: repo}
}

// List returns customer accounts, optionally filtered by approval status.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by approval status"  Enums(pending, approved)
// @Success      200     {array}   accountResponse
// @Failure      400     {object}  map[string]string
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /admin/customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	var filter ports.ListCustomersFilter
	if raw := c.QueryParam("status"); raw != "" {
		status, ok := domain.ParseApprovalStatus(raw)
		if !ok {
			return domain.ErrInvalidApprovalStatus
		}
		filter.Status = status
	}

	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	if !role.CanApproveCustomers() {
		return domain.ErrForbidden
	}

	customers, err := h.approval.ListCustomers(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if len(customers) == 0 {
		// The admin console treats an empty roster as not-found.
		return echo.NewHTTPError(http.StatusNotFound, "no customers found")
	}

	out := make([]accountResponse, 0, len(customers))
	for _, cust := range customers {
		out = append(out, toAccountResponse(cust))
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID returns a single customer account.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Customer account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/customers/{id} [get]
func (h *CustomerHandler) GetByID(c echo.Context) error {
	customer, err := h.repo.FindCustomerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(customer))
}

// SetApproval transitions a customer's approval status.
//
// @Summary      Update customer approval status
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Customer account id"
// @Param        body  body      approvalRequest  true  "Target status"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/customers/{id}/approval [patch]
func (h *CustomerHandler) SetApproval(c echo.Context) error {
	var req approvalRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrMalformedRequest
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrInvalidApprovalStatus
	}

	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	updated, err := h.approval.SetApprovalStatus(c.Request().Context(), role, c.Param("id"), domain.ApprovalStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.ApprovalTransitionsTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, toAccountResponse(updated))
}
