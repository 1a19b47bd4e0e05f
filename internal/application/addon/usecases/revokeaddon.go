package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type RevokeAddonCommand struct {
	TenantID uint
	GrantID  uint
}

// RevokeAddonUseCase deactivates an addon grant. The next limit check falls
// back to the plan's built-in allowance.
type RevokeAddonUseCase struct {
	addonRepo addon.Repository
	logger    logger.Interface
}

func NewRevokeAddonUseCase(addonRepo addon.Repository, logger logger.Interface) *RevokeAddonUseCase {
	return &RevokeAddonUseCase{
		addonRepo: addonRepo,
		logger:    logger,
	}
}

func (uc *RevokeAddonUseCase) Execute(ctx context.Context, cmd RevokeAddonCommand) error {
	grant, err := uc.addonRepo.GetByID(ctx, cmd.GrantID)
	if err != nil {
		return fmt.Errorf("failed to get addon grant: %w", err)
	}
	if grant == nil {
		return addon.ErrGrantNotFound
	}
	if grant.TenantID() != cmd.TenantID {
		// Grants are tenant-scoped; a mismatched ID is treated as absent.
		return addon.ErrGrantNotFound
	}

	grant.Deactivate()
	if err := uc.addonRepo.Update(ctx, grant); err != nil {
		uc.logger.Errorw("failed to revoke addon grant",
			"error", err, "tenant_id", cmd.TenantID, "grant_id", cmd.GrantID)
		return fmt.Errorf("failed to revoke addon grant: %w", err)
	}

	uc.logger.Infow("addon revoked",
		"tenant_id", cmd.TenantID,
		"grant_id", cmd.GrantID,
		"addon_type", grant.AddonType().String(),
	)
	return nil
}
