// Package identity resolves the requesting user from a bearer token and
// attaches it to the request context before any handler runs.
//
// Resolution is advisory: this middleware never rejects a request. Missing
// headers, malformed headers, bad tokens and unknown users all degrade to an
// anonymous request, and each handler decides for itself whether anonymous
// is acceptable. This lets public and protected endpoints share one
// middleware.
package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/feature/user/domain/entity"
	"plant_backend/internal/feature/user/usecase"
	jwtmw "plant_backend/internal/platform/jwt"
)

// ContextUserKey is the gin context key holding the resolved *entity.User.
const ContextUserKey = "currentUser"

// UserFinder looks up the live user record referenced by a token claim.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*jwtmw.Claims, error)
}

// Resolve returns a middleware that binds the resolved user, if any, to the
// gin context. It always calls the next handler.
func Resolve(users UserFinder, tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolve(c.Request.Context(), users, tokens, c.GetHeader("Authorization")); user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// resolve maps an Authorization header to a live user record, or nil for
// anonymous. It has no failure mode: every rejection path returns nil.
func resolve(ctx context.Context, users UserFinder, tokens TokenParser, header string) *entity.User {
	if header == "" {
		return nil
	}

	// Expect a "<scheme> <token>" shape.
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return nil
	}

	claims, err := tokens.Parse(parts[1])
	if err != nil {
		return nil
	}

	// The token carries a snapshot from login time; only the email claim is
	// trusted, and only as a lookup key for the live record.
	user, err := users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if !errors.Is(err, usecase.ErrUserNotFound) {
			// Store failures must not crash the request; the handler will
			// treat the request as unauthenticated.
			slog.Error("identity resolution store lookup failed", "error", err)
		}
		return nil
	}
	return user
}

// CurrentUser returns the user resolved for this request, if any.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
