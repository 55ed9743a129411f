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

	"github.com/taskflow/taskflow-api/internal/api/middleware"
	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) SeedAdmin(ctx context.Context) error { return nil }

type stubUserService struct {
	createFn func(ctx context.Context, caller authz.Caller, input ports.CreateUserInput) (*domain.User, error)
	listFn   func(ctx context.Context, caller authz.Caller) ([]*domain.User, error)
	updateFn func(ctx context.Context, caller authz.Caller, id string, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, caller authz.Caller, id string) error
}

func (s *stubUserService) List(ctx context.Context, caller authz.Caller) ([]*domain.User, error) {
	return s.listFn(ctx, caller)
}

func (s *stubUserService) Create(ctx context.Context, caller authz.Caller, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, caller, input)
}

func (s *stubUserService) Update(ctx context.Context, caller authz.Caller, id string, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, input)
}

func (s *stubUserService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "admin@admin.com" || password != "123456" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Admin", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{}, 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"admin@admin.com","password":"123456"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["email"] != "admin@admin.com" || resp["role"] != "ADMIN" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}

	cookie := findCookie(rec.Result().Cookies(), middleware.SessionCookie)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "token123" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{}, 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com","password":"bad"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if findCookie(rec.Result().Cookies(), middleware.SessionCookie) != nil {
		t.Fatalf("cookie must not be set on failure")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, &stubUserService{}, 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"alice@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_CreatesUser(t *testing.T) {
	e := newTestEcho()
	users := &stubUserService{
		createFn: func(ctx context.Context, caller authz.Caller, input ports.CreateUserInput) (*domain.User, error) {
			if caller.Role != domain.RoleAdmin {
				t.Fatalf("unexpected caller: %+v", caller)
			}
			return &domain.User{ID: "u2", Name: input.Name, Email: input.Email, Role: input.Role}, nil
		},
	}
	handler := NewAuthHandler(&stubAuthService{}, users, 24*time.Hour)

	body := strings.NewReader(`{"name":"Bob","email":"bob@x.com","password":"secret1","role":"USER"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", "admin1")
	c.Set("role", "ADMIN")

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "bob@x.com" || resp["role"] != "USER" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password digest leaked in response")
	}
}

func TestAuthHandler_Register_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{}, &stubUserService{}, 24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
