package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/actorctx"
	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/observability"
)

// Keep these small interfaces so tests can fake them easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type RoleReader interface {
	GetRoles(ctx context.Context, userID int64) (user.Roles, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	roles RoleReader
	log   *slog.Logger
	prom  *observability.Prom
}

func NewAuthMiddleware(jwt TokenVerifier, roles RoleReader, log *slog.Logger, prom *observability.Prom) *AuthMiddleware {
	if log == nil {
		log = observability.NopLogger()
	}
	return &AuthMiddleware{jwt: jwt, roles: roles, log: log, prom: prom}
}

// RequireAuth resolves the bearer token to a user id. Expired, forged and
// malformed tokens all get the same 401 body.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			m.prom.ObserveAuth("authenticate", "missing")
			abortError(c, http.StatusUnauthorized, "unauthenticated", "Missing or invalid Authorization header")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			m.prom.ObserveAuth("authenticate", "invalid")
			m.log.DebugContext(c.Request.Context(), "token rejected", "err", err)
			abortError(c, http.StatusUnauthorized, "invalid_token", "Access denied")
			return
		}

		m.prom.ObserveAuth("authenticate", "ok")

		c.Set(CtxUserID, claims.UserID)
		c.Request = c.Request.WithContext(actorctx.WithUserID(c.Request.Context(), claims.UserID))

		c.Next()
	}
}

// RequireRole must run after RequireAuth. Roles come from storage on every
// request, so revoking a role takes effect without waiting for token expiry.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			abortError(c, http.StatusUnauthorized, "unauthenticated", "Missing identity context")
			return
		}

		roles, err := m.roles.GetRoles(c.Request.Context(), userID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			m.prom.ObserveAuth("authorize", "error")
			m.log.ErrorContext(c.Request.Context(), "role lookup failed", "user_id", userID, "err", err)
			abortError(c, http.StatusInternalServerError, "storage_error", "Could not load user roles: "+err.Error())
			return
		}

		// a vanished user has no roles and is denied like any other
		if err := auth.Authorize(roles, required); err != nil {
			m.prom.ObserveAuth("authorize", "forbidden")
			abortError(c, http.StatusForbidden, "forbidden", "Insufficient permissions")
			return
		}

		m.prom.ObserveAuth("authorize", "ok")
		c.Next()
	}
}

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}
