package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/application/outlet/dto"
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type CreateOutletCommand struct {
	TenantID uint
	Name     string
	Address  string
}

// LimitChecking is what outlet creation needs from the limit checker.
type LimitChecking interface {
	CheckLimit(ctx context.Context, tenantID uint, resource addon.Resource) (*entitlement.LimitResult, error)
}

// CreateOutletUseCase opens a new outlet for a tenant, subject to the
// tenant's outlet limit (plan default or extra-outlets addon).
type CreateOutletUseCase struct {
	outletRepo outlet.Repository
	limits     LimitChecking
	logger     logger.Interface
}

func NewCreateOutletUseCase(
	outletRepo outlet.Repository,
	limits LimitChecking,
	logger logger.Interface,
) *CreateOutletUseCase {
	return &CreateOutletUseCase{
		outletRepo: outletRepo,
		limits:     limits,
		logger:     logger,
	}
}

func (uc *CreateOutletUseCase) Execute(ctx context.Context, cmd CreateOutletCommand) (*dto.OutletDTO, error) {
	result, err := uc.limits.CheckLimit(ctx, cmd.TenantID, addon.ResourceOutlets)
	if err != nil {
		return nil, fmt.Errorf("failed to check outlet limit: %w", err)
	}
	if !result.Allowed {
		return nil, fmt.Errorf("%w: outlets at %d", entitlement.ErrLimitExceeded, result.Current)
	}

	o, err := outlet.NewOutlet(cmd.TenantID, cmd.Name, cmd.Address)
	if err != nil {
		return nil, err
	}
	if err := uc.outletRepo.Create(ctx, o); err != nil {
		uc.logger.Errorw("failed to create outlet", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to create outlet: %w", err)
	}

	uc.logger.Infow("outlet created",
		"outlet_id", o.ID(),
		"tenant_id", cmd.TenantID,
		"name", o.Name(),
	)
	return dto.ToDTO(o), nil
}
