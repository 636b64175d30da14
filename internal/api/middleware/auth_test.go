package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/task-manager/internal/core/domain"
)

type stubVerifier struct {
	users map[string]*domain.User
	err   error
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[token]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

func runAuth(t *testing.T, verifier *stubVerifier, header string) (bool, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(verifier)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return called, c, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	alice := &domain.User{ID: "u1", Email: "alice@example.com", Name: "Alice"}
	verifier := &stubVerifier{users: map[string]*domain.User{"good": alice}}

	called, c, err := runAuth(t, verifier, "Bearer good")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if got, _ := c.Get(UserKey).(*domain.User); got != alice {
		t.Fatalf("user not set on context: %v", c.Get(UserKey))
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	verifier := &stubVerifier{users: map[string]*domain.User{"good": {ID: "u1"}}}

	called, _, err := runAuth(t, verifier, "bearer good")
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to pass, err=%v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	called, _, err := runAuth(t, &stubVerifier{}, "")
	assertUnauthorizedHTTP(t, err)
	if called {
		t.Fatalf("next should not be called")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, h := range []string{"Token abc", "Bearer", "Bearer   ", "abc"} {
		called, _, err := runAuth(t, &stubVerifier{}, h)
		assertUnauthorizedHTTP(t, err)
		if called {
			t.Fatalf("%q: next should not be called", h)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	called, _, err := runAuth(t, &stubVerifier{}, "Bearer forged")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if called {
		t.Fatalf("next should not be called")
	}
}

func TestAuthMiddleware_VerifierFailurePropagates(t *testing.T) {
	boom := errors.New("store down")
	_, _, err := runAuth(t, &stubVerifier{err: boom}, "Bearer x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected verifier error, got %v", err)
	}
}

func assertUnauthorizedHTTP(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}
