package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/schoolevents/eventhub/internal/core/domain"
	"github.com/schoolevents/eventhub/internal/core/ports"
)

// ContextKeySession is where the auth middlewares store the *domain.Session.
const ContextKeySession = "session"

// Auth validates the bearer JWT, rejects revoked tokens and tokens of deleted
// users, and stores the resulting *domain.Session in the context.
func Auth(jwtSecret string, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return authenticate(jwtSecret, denylist, log, true)
}

// OptionalAuth behaves like Auth but lets requests without an Authorization
// header through as guests (nil session). A malformed or invalid token is
// still rejected.
func OptionalAuth(jwtSecret string, denylist ports.TokenDenylist, log zerolog.Logger) echo.MiddlewareFunc {
	return authenticate(jwtSecret, denylist, log, false)
}

func authenticate(jwtSecret string, denylist ports.TokenDenylist, log zerolog.Logger, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			session, err := parseSession(parts[1], jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if denylist != nil {
				revoked, err := isRevoked(c.Request().Context(), denylist, session)
				if err != nil {
					log.Warn().Err(err).
						Str("user_id", session.Principal.ID).
						Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
						Msg("denylist check failed")
				} else if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(ContextKeySession, session)
			return next(c)
		}
	}
}

// isRevoked reports whether the token was signed out or its user deleted.
func isRevoked(ctx context.Context, denylist ports.TokenDenylist, session *domain.Session) (bool, error) {
	if session.TokenID != "" {
		revoked, err := denylist.IsRevoked(ctx, session.TokenID)
		if err != nil || revoked {
			return revoked, err
		}
	}
	return denylist.IsUserRevoked(ctx, session.Principal.ID)
}

func parseSession(raw, jwtSecret string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)
	jti, _ := claims["jti"].(string)

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time.UTC()
	}

	return &domain.Session{
		Principal: domain.Principal{ID: sub, Email: email},
		Token:     raw,
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}
