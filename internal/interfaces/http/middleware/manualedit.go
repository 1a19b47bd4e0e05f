package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// MarkManualUserEdit flags the request as an explicit per-user status edit.
// It must be registered before RequireEntitlement: the guard snapshots the
// actor when it runs, and the activation cascade consults the flag to leave
// manually edited accounts alone.
func MarkManualUserEdit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyManualUserEdit, true)
		c.Next()
	}
}
