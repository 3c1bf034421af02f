package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/api/middleware"
	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, requester domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, requester domain.Identity, id string) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, requester domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, requester, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, requester domain.Identity, id string) (*domain.User, error) {
	return s.deleteFn(ctx, requester, id)
}

func newUserContext(e *echo.Echo, method, body string, identity *domain.Identity, id string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if identity != nil {
		middleware.SetIdentity(c, *identity)
	}
	return c, rec
}

func TestUserHandler_List(t *testing.T) {
	e := echo.New()
	now := time.Now().UTC()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: "u1", Name: "Alice", Email: "a@x.com", Role: "user", CreatedAt: now, UpdatedAt: now},
				{ID: "u2", Name: "Root", Email: "root@x.com", Role: "admin", CreatedAt: now, UpdatedAt: now},
			}, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, rec := newUserContext(e, http.MethodGet, "", nil, "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["count"] != float64(2) {
		t.Fatalf("expected count 2, got %v", resp["count"])
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password data")
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, _ := newUserContext(e, http.MethodGet, "", nil, "missing")
	err := h.Get(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound passthrough, got %v", err)
	}
}

func TestUserHandler_Update_PassesRequesterAndInput(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	requester := domain.Identity{ID: "u5", Email: "a@x.com", Role: domain.RoleUser}
	stub := &stubUserService{
		updateFn: func(ctx context.Context, got domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
			if got != requester {
				t.Fatalf("requester not forwarded: %+v", got)
			}
			if id != "u5" {
				t.Fatalf("unexpected target id: %s", id)
			}
			if in.Name == nil || *in.Name != "Alice B" || in.Role != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: id, Name: *in.Name, Email: "a@x.com", Role: "user"}, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, rec := newUserContext(e, http.MethodPut, `{"name":"Alice B"}`, &requester, "u5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_ForwardsOwnershipErrors(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	requester := domain.Identity{ID: "u5", Role: domain.RoleUser}

	for name, want := range map[string]error{
		"other record": domain.ErrForbidden,
		"role change":  domain.ErrRoleChangeForbidden,
	} {
		stub := &stubUserService{
			updateFn: func(ctx context.Context, _ domain.Identity, _ string, _ ports.UpdateUserInput) (*domain.User, error) {
				return nil, want
			},
		}
		h := NewUserHandler(stub, zerolog.Nop())

		c, _ := newUserContext(e, http.MethodPut, `{"name":"Eve"}`, &requester, "u9")
		if err := h.Update(c); !errors.Is(err, want) {
			t.Fatalf("%s: expected %v passthrough, got %v", name, want, err)
		}
	}
}

func TestUserHandler_Update_NoIdentityIs401(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, _ domain.Identity, _ string, _ ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, _ := newUserContext(e, http.MethodPut, `{"name":"Eve"}`, nil, "u9")
	err := h.Update(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestUserHandler_Update_InvalidRoleValue(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	requester := domain.Identity{ID: "u5", Role: domain.RoleAdmin}
	stub := &stubUserService{
		updateFn: func(ctx context.Context, _ domain.Identity, _ string, _ ports.UpdateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, rec := newUserContext(e, http.MethodPut, `{"role":"superuser"}`, &requester, "u9")
	_ = h.Update(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_ReturnsIDAndEmail(t *testing.T) {
	e := echo.New()
	requester := domain.Identity{ID: "u5", Role: domain.RoleUser}
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, got domain.Identity, id string) (*domain.User, error) {
			if got != requester || id != "u5" {
				t.Fatalf("unexpected args: %+v %s", got, id)
			}
			return &domain.User{ID: "u5", Name: "Alice", Email: "a@x.com", Role: "user"}, nil
		},
	}
	h := NewUserHandler(stub, zerolog.Nop())

	c, rec := newUserContext(e, http.MethodDelete, "", &requester, "u5")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u5" || user["email"] != "a@x.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := user["name"]; present {
		t.Fatalf("delete response should only carry id and email: %+v", user)
	}
}
