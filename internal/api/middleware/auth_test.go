package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type stubDenylist struct {
	revoked      map[string]bool
	revokedUsers map[string]bool
	err          error
}

func (d *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revoked[tokenID], nil
}

func (d *stubDenylist) RevokeUser(_ context.Context, userID string, _ time.Time) error {
	d.revokedUsers[userID] = true
	return nil
}

func (d *stubDenylist) IsUserRevoked(_ context.Context, userID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revokedUsers[userID], nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-1",
		"email": "alice@school.edu",
		"jti":   "token-1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func newCtx(authHeader string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	c, rec, _ := newCtx("Bearer " + signToken(t, validClaims()))

	called := false
	mw := Auth("secret", &stubDenylist{}, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		session, ok := c.Get(ContextKeySession).(*domain.Session)
		if !ok || session == nil {
			t.Fatalf("session not set")
		}
		if session.Principal.ID != "user-1" || session.Principal.Email != "alice@school.edu" {
			t.Fatalf("unexpected principal: %+v", session.Principal)
		}
		if session.TokenID != "token-1" {
			t.Fatalf("unexpected token id: %s", session.TokenID)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	noSub := validClaims()
	delete(noSub, "sub")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"invalid header format", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + signToken(t, expired)},
		{"missing subject", "Bearer " + signToken(t, noSub)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec, e := newCtx(tc.header)
			handler := Auth("secret", nil, zerolog.Nop())(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	c, rec, e := newCtx("Bearer " + signToken(t, validClaims()))
	deny := &stubDenylist{revoked: map[string]bool{"token-1": true}}

	handler := Auth("secret", deny, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	deny := &stubDenylist{revokedUsers: map[string]bool{"user-1": true}}

	for name, mw := range map[string]echo.MiddlewareFunc{
		"required": Auth("secret", deny, zerolog.Nop()),
		"optional": OptionalAuth("secret", deny, zerolog.Nop()),
	} {
		t.Run(name, func(t *testing.T) {
			c, rec, e := newCtx("Bearer " + signToken(t, validClaims()))
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_DenylistErrorLetsTokenThrough(t *testing.T) {
	c, rec, _ := newCtx("Bearer " + signToken(t, validClaims()))
	deny := &stubDenylist{err: context.DeadlineExceeded}

	handler := Auth("secret", deny, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_GuestPassesThrough(t *testing.T) {
	c, rec, _ := newCtx("")

	handler := OptionalAuth("secret", nil, zerolog.Nop())(func(c echo.Context) error {
		if c.Get(ContextKeySession) != nil {
			t.Fatalf("expected no session for guest")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalAuth_InvalidTokenStillRejected(t *testing.T) {
	c, rec, e := newCtx("Bearer junk")

	handler := OptionalAuth("secret", nil, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
