package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rentassist/identity-service/internal/api/middleware"
	"github.com/rentassist/identity-service/internal/core/domain"
	"github.com/rentassist/identity-service/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, role, username, secret string) (*domain.Account, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, role, username, secret string) (*domain.Account, error) {
	return s.authenticateFn(ctx, role, username, secret)
}

type stubRegistrationService struct {
	registerFn func(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Account, error)
}

func (s *stubRegistrationService) RegisterCustomer(ctx context.Context, input ports.RegisterCustomerInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

type stubSessionIssuer struct {
	issueFn  func(ctx context.Context, account *domain.Account) (*domain.Session, error)
	revokeFn func(ctx context.Context, token string) error
}

func (s *stubSessionIssuer) Issue(ctx context.Context, account *domain.Account) (*domain.Session, error) {
	return s.issueFn(ctx, account)
}

func (s *stubSessionIssuer) Validate(context.Context, string) (*domain.Session, error) {
	panic("not used")
}

func (s *stubSessionIssuer) Revoke(ctx context.Context, token string) error {
	return s.revokeFn(ctx, token)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		authenticateFn: func(_ context.Context, role, username, secret string) (*domain.Account, error) {
			if role != "dealer" || username != "d1" || secret != "x" {
				t.Fatalf("unexpected args: %s %s %s", role, username, secret)
			}
			return &domain.Account{ID: "acc-001", Role: domain.RoleDealer, Username: "d1"}, nil
		},
	}
	expires := time.Now().Add(time.Hour).UTC()
	issuer := &stubSessionIssuer{
		issueFn: func(_ context.Context, account *domain.Account) (*domain.Session, error) {
			return &domain.Session{Token: "tok123", AccountID: account.ID, Role: account.Role, ExpiresAt: expires}, nil
		},
	}
	h := NewAuthHandler(auth, nil, issuer)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login", `{"role":"dealer","username":"d1","password":"x"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	account, ok := resp["account"].(map[string]any)
	if !ok || account["username"] != "d1" || account["role"] != "dealer" {
		t.Fatalf("unexpected account payload: %+v", account)
	}
	if _, leaked := account["secret_hash"]; leaked {
		t.Fatalf("response leaks credential material")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(context.Context, string, string, string) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}, nil, nil)

	for _, body := range []string{
		`{"role":"customer","username":"alice"}`,
		`{"role":"customer","password":"pw"}`,
		`{"username":"alice","password":"pw"}`,
		"not-json",
	} {
		c, _ := newTestContext(t, http.MethodPost, "/auth/login", body)
		if err := h.Login(c); err != domain.ErrMalformedRequest {
			t.Fatalf("body %q: expected ErrMalformedRequest, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(context.Context, string, string, string) (*domain.Account, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}, nil, nil)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"role":"customer","username":"alice","password":"bad"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	reg := &stubRegistrationService{
		registerFn: func(_ context.Context, input ports.RegisterCustomerInput) (*domain.Account, error) {
			if input.Username != "alice" || input.Secret != "pw1234" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Account{
				ID:             "acc-001",
				Role:           domain.RoleCustomer,
				Username:       input.Username,
				ApprovalStatus: domain.ApprovalPending,
			}, nil
		},
	}
	h := NewAuthHandler(nil, reg, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register", `{"username":"alice","password":"pw1234","email":"alice@example.com"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["approval_status"] != "pending" {
		t.Fatalf("expected pending approval status, got %v", resp["approval_status"])
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(nil, &stubRegistrationService{
		registerFn: func(context.Context, ports.RegisterCustomerInput) (*domain.Account, error) {
			return nil, domain.ErrAccountExists
		},
	}, nil)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"username":"alice","password":"pw1234"}`)
	if err := h.Register(c); err != domain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := ""
	h := NewAuthHandler(nil, nil, &stubSessionIssuer{
		revokeFn: func(_ context.Context, token string) error {
			revoked = token
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set(middleware.CtxToken, "tok123")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "tok123" {
		t.Fatalf("expected tok123 revoked, got %q", revoked)
	}
}
