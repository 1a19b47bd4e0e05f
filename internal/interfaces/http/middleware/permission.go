package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/infrastructure/authz"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

// PermissionMiddleware checks the actor's role against the casbin policy
// store. Runs after RequireAuth.
type PermissionMiddleware struct {
	enforcer *authz.Enforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer *authz.Enforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// Require allows the request only when the actor's role may perform action
// on resource.
func (m *PermissionMiddleware) Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)

		allowed, err := m.enforcer.Enforce(actor.Role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed",
				"role", actor.Role,
				"resource", resource,
				"action", action,
				"error", err,
			)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
