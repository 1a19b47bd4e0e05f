package entitlement

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// CascadeActivator propagates an entitlement change to the tenant's staff
// accounts. Cashier, kitchen and supervisor accounts follow the tenant's
// effective entitlement; admin accounts are never auto-toggled.
type CascadeActivator struct {
	users  user.Repository
	logger logger.Interface
}

func NewCascadeActivator(users user.Repository, logger logger.Interface) *CascadeActivator {
	return &CascadeActivator{
		users:  users,
		logger: logger,
	}
}

// Apply activates or deactivates the tenant's staff accounts. When the actor
// is a tenant admin performing a manual user-status edit the cascade is
// skipped entirely: manual edits belong to the admin, not the engine.
func (c *CascadeActivator) Apply(ctx context.Context, tenantID uint, becameActive bool, actor Actor) error {
	if actor.Role == authorization.RoleAdminTenant && actor.ManualUserEdit {
		c.logger.Debugw("skipping activation cascade for manual user edit",
			"tenant_id", tenantID,
			"actor_user_id", actor.UserID,
		)
		return nil
	}

	changed, err := c.users.SetActiveByRoles(ctx, tenantID, authorization.CascadeRoles, becameActive)
	if err != nil {
		return fmt.Errorf("failed to cascade user activation: %w", err)
	}

	c.logger.Infow("applied activation cascade",
		"tenant_id", tenantID,
		"active", becameActive,
		"users_changed", changed,
	)
	return nil
}
