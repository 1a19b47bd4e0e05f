package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/constants"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// recordingReconciler captures the actor each reconciliation runs with. The
// guard dispatches privileged-role reconciliation on a goroutine, so actors
// are delivered over a channel.
type recordingReconciler struct {
	actors chan entitlement.Actor
}

func newRecordingReconciler() *recordingReconciler {
	return &recordingReconciler{actors: make(chan entitlement.Actor, 1)}
}

func (r *recordingReconciler) Reconcile(ctx context.Context, tenantID uint, actor entitlement.Actor) (*entitlement.Outcome, error) {
	r.actors <- actor
	end := time.Now().AddDate(0, 1, 0)
	return &entitlement.Outcome{
		TenantActive:   true,
		Plan:           subscription.PlanBasic,
		EntitlementEnd: &end,
	}, nil
}

func stubAuth(role authorization.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, uint(1))
		c.Set(constants.ContextKeyTenantID, uint(7))
		c.Set(constants.ContextKeyUserRole, role.String())
		c.Next()
	}
}

func TestMarkManualUserEdit_FlagReachesGuardReconciliation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reconciler := newRecordingReconciler()
	guard := entitlement.NewGuard(reconciler, clock.System(), logger.NewLogger())
	em := NewEntitlementMiddleware(guard, logger.NewLogger())

	r := gin.New()
	r.PATCH("/users/:id/active",
		stubAuth(authorization.RoleAdminTenant),
		MarkManualUserEdit(),
		em.RequireEntitlement(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/users/3/active", nil))

	require.Equal(t, http.StatusOK, w.Code)

	select {
	case actor := <-reconciler.actors:
		assert.True(t, actor.ManualUserEdit,
			"reconciliation triggered by a manual edit must carry the manual-edit marker")
		assert.Equal(t, uint(7), actor.TenantID)
		assert.Equal(t, authorization.RoleAdminTenant, actor.Role)
	case <-time.After(2 * time.Second):
		t.Fatal("background reconciliation never ran")
	}
}

func TestMarkManualUserEdit_OtherRoutesCarryNoMarker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reconciler := newRecordingReconciler()
	guard := entitlement.NewGuard(reconciler, clock.System(), logger.NewLogger())
	em := NewEntitlementMiddleware(guard, logger.NewLogger())

	r := gin.New()
	r.GET("/users",
		stubAuth(authorization.RoleSupervisor),
		em.RequireEntitlement(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusOK, w.Code)

	select {
	case actor := <-reconciler.actors:
		assert.False(t, actor.ManualUserEdit)
	case <-time.After(2 * time.Second):
		t.Fatal("reconciliation never ran")
	}
}
