package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type SetTenantActiveCommand struct {
	TenantID uint
	Active   bool
	Actor    entitlement.Actor
}

// SetTenantActiveUseCase toggles a tenant's own active flag and cascades the
// change to its staff accounts. Suspending a tenant locks out its staff
// immediately, regardless of any remaining entitlement.
type SetTenantActiveUseCase struct {
	tenantRepo tenant.Repository
	cascade    *entitlement.CascadeActivator
	logger     logger.Interface
}

func NewSetTenantActiveUseCase(
	tenantRepo tenant.Repository,
	cascade *entitlement.CascadeActivator,
	logger logger.Interface,
) *SetTenantActiveUseCase {
	return &SetTenantActiveUseCase{
		tenantRepo: tenantRepo,
		cascade:    cascade,
		logger:     logger,
	}
}

func (uc *SetTenantActiveUseCase) Execute(ctx context.Context, cmd SetTenantActiveCommand) error {
	tn, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		return fmt.Errorf("failed to get tenant: %w", err)
	}
	if tn == nil {
		return tenant.ErrTenantNotFound
	}

	if err := uc.tenantRepo.SetActive(ctx, cmd.TenantID, cmd.Active); err != nil {
		uc.logger.Errorw("failed to set tenant active flag",
			"error", err, "tenant_id", cmd.TenantID, "active", cmd.Active)
		return fmt.Errorf("failed to set tenant active flag: %w", err)
	}

	uc.logger.Infow("tenant active flag changed",
		"tenant_id", cmd.TenantID,
		"active", cmd.Active,
		"actor_user_id", cmd.Actor.UserID,
	)

	if err := uc.cascade.Apply(ctx, cmd.TenantID, cmd.Active, cmd.Actor); err != nil {
		uc.logger.Errorw("failed to cascade tenant activation",
			"error", err, "tenant_id", cmd.TenantID)
	}
	return nil
}
