package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/shared/logger"
	"github.com/sentra-pos/sentra/internal/shared/utils"
)

// EntitlementMiddleware gates tenant-scoped routes on the tenant's current
// subscription standing.
type EntitlementMiddleware struct {
	guard  *entitlement.Guard
	logger logger.Interface
}

func NewEntitlementMiddleware(guard *entitlement.Guard, logger logger.Interface) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		guard:  guard,
		logger: logger,
	}
}

// RequireEntitlement runs the access guard for the actor's own tenant.
// Runs after RequireAuth. Requests denied here return 403 with the typed
// reason so clients can render the right upgrade prompt.
func (m *EntitlementMiddleware) RequireEntitlement() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)

		// Super admins carry no tenant; there is nothing to gate.
		if actor.TenantID == 0 {
			c.Next()
			return
		}

		decision, err := m.guard.CheckAccess(c.Request.Context(), actor.TenantID, actor)
		if err != nil {
			m.logger.Errorw("entitlement check failed",
				"tenant_id", actor.TenantID,
				"error", err,
			)
			utils.ErrorResponse(c, http.StatusInternalServerError, "entitlement check failed")
			c.Abort()
			return
		}

		if !decision.Allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "entitlement_denied",
					"reason":  string(decision.Reason),
					"message": denyMessage(decision.Reason),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func denyMessage(reason entitlement.DenyReason) string {
	switch reason {
	case entitlement.DenyTenantInactive:
		return "tenant account is inactive"
	case entitlement.DenyNoSubscription:
		return "tenant has no subscription"
	case entitlement.DenySubscriptionExpired:
		return "subscription has expired"
	default:
		return "access denied"
	}
}
