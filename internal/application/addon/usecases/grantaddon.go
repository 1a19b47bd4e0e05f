package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sentra-pos/sentra/internal/application/addon/dto"
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type GrantAddonCommand struct {
	TenantID     uint
	AddonType    string
	Limit        *int
	DurationDays *int // nil = perpetual
}

// GrantAddonUseCase attaches an addon to a tenant: a feature toggle or a
// raised limit for one resource. A new grant for a type the tenant already
// holds supersedes the old one, which is deactivated.
type GrantAddonUseCase struct {
	addonRepo  addon.Repository
	tenantRepo tenant.Repository
	clock      clock.Clock
	logger     logger.Interface
}

func NewGrantAddonUseCase(
	addonRepo addon.Repository,
	tenantRepo tenant.Repository,
	clk clock.Clock,
	logger logger.Interface,
) *GrantAddonUseCase {
	return &GrantAddonUseCase{
		addonRepo:  addonRepo,
		tenantRepo: tenantRepo,
		clock:      clk,
		logger:     logger,
	}
}

func (uc *GrantAddonUseCase) Execute(ctx context.Context, cmd GrantAddonCommand) (*dto.GrantDTO, error) {
	addonType := addon.Type(cmd.AddonType)
	if !addonType.IsValid() {
		return nil, fmt.Errorf("%w: %s", addon.ErrInvalidAddonType, cmd.AddonType)
	}

	tn, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}

	now := uc.clock.Now()
	var endDate *time.Time
	if cmd.DurationDays != nil {
		if *cmd.DurationDays <= 0 {
			return nil, fmt.Errorf("duration must be positive, got %d days", *cmd.DurationDays)
		}
		end := now.AddDate(0, 0, *cmd.DurationDays)
		endDate = &end
	}

	existing, err := uc.addonRepo.GetActiveByTenantAndType(ctx, cmd.TenantID, addonType, now)
	if err != nil && !errors.Is(err, addon.ErrGrantNotFound) {
		return nil, fmt.Errorf("failed to check existing addon grant: %w", err)
	}
	if existing != nil {
		existing.Deactivate()
		if err := uc.addonRepo.Update(ctx, existing); err != nil {
			uc.logger.Errorw("failed to supersede existing addon grant",
				"error", err, "tenant_id", cmd.TenantID, "addon_type", addonType.String())
			return nil, fmt.Errorf("failed to supersede existing addon grant: %w", err)
		}
	}

	grant, err := addon.NewGrant(cmd.TenantID, addonType, cmd.Limit, endDate)
	if err != nil {
		return nil, err
	}
	if err := uc.addonRepo.Create(ctx, grant); err != nil {
		uc.logger.Errorw("failed to create addon grant",
			"error", err, "tenant_id", cmd.TenantID, "addon_type", addonType.String())
		return nil, fmt.Errorf("failed to create addon grant: %w", err)
	}

	uc.logger.Infow("addon granted",
		"tenant_id", cmd.TenantID,
		"addon_type", addonType.String(),
		"limit", cmd.Limit,
		"end_date", endDate,
	)
	return dto.ToDTO(grant), nil
}
