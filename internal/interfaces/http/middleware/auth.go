package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/infrastructure/auth"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/constants"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the authenticated
// identity on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyTenantID, claims.TenantID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))

		c.Next()
	}
}

// ActorFromContext rebuilds the engine actor from the values RequireAuth
// stored on the request.
func ActorFromContext(c *gin.Context) entitlement.Actor {
	actor := entitlement.Actor{}

	if userID, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := userID.(uint); ok {
			actor.UserID = id
		}
	}
	if tenantID, ok := c.Get(constants.ContextKeyTenantID); ok {
		if id, ok := tenantID.(uint); ok {
			actor.TenantID = id
		}
	}
	if role, ok := c.Get(constants.ContextKeyUserRole); ok {
		if r, ok := role.(string); ok {
			actor.Role = authorization.ParseUserRole(r)
		}
	}
	if manual, ok := c.Get(constants.ContextKeyManualUserEdit); ok {
		if m, ok := manual.(bool); ok {
			actor.ManualUserEdit = m
		}
	}

	return actor
}
