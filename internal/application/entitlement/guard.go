package entitlement

import (
	"context"

	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/goroutine"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// DenyReason is the typed reason a request was refused. Denial is an
// expected outcome, not a fault; only infrastructure failures surface as
// errors.
type DenyReason string

const (
	DenyTenantInactive      DenyReason = "TENANT_INACTIVE"
	DenyNoSubscription      DenyReason = "NO_SUBSCRIPTION"
	DenySubscriptionExpired DenyReason = "SUBSCRIPTION_EXPIRED"
)

// Decision is the guard's verdict for one request.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Guard is the per-request entitlement gate. Staff requests reconcile
// synchronously because the verdict depends on the reconciled state.
// Privileged actors (super admin, tenant admin) always pass so they can
// manage their own expired tenant, but reconciliation is still dispatched in
// the background to keep the ledger eventually consistent without delaying
// the request.
type Guard struct {
	reconciler Reconciling
	clock      clock.Clock
	logger     logger.Interface
}

func NewGuard(reconciler Reconciling, clk clock.Clock, logger logger.Interface) *Guard {
	return &Guard{
		reconciler: reconciler,
		clock:      clk,
		logger:     logger,
	}
}

// CheckAccess decides whether the actor may operate on the tenant right now.
func (g *Guard) CheckAccess(ctx context.Context, tenantID uint, actor Actor) (Decision, error) {
	if actor.Role.IsPrivileged() {
		goroutine.SafeGoCtx(ctx, g.logger, "background-reconcile", func(ctx context.Context) {
			if _, err := g.reconciler.Reconcile(ctx, tenantID, actor); err != nil {
				g.logger.Errorw("background reconciliation failed",
					"tenant_id", tenantID,
					"actor_role", actor.Role.String(),
					"error", err,
				)
			}
		})
		return allow(), nil
	}

	outcome, err := g.reconciler.Reconcile(ctx, tenantID, actor)
	if err != nil {
		return Decision{}, err
	}

	if !outcome.TenantActive {
		return deny(DenyTenantInactive), nil
	}
	if outcome.EntitlementEnd == nil {
		return deny(DenyNoSubscription), nil
	}
	if !outcome.Covered(g.clock.Now()) {
		return deny(DenySubscriptionExpired), nil
	}
	return allow(), nil
}
