package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/tenant/dto"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type CreateTenantCommand struct {
	Name string
	Slug string
}

// CreateTenantUseCase registers a new tenant. New tenants start on the
// default plan with no entitlement; an explicit grant follows.
type CreateTenantUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewCreateTenantUseCase(tenantRepo tenant.Repository, logger logger.Interface) *CreateTenantUseCase {
	return &CreateTenantUseCase{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

func (uc *CreateTenantUseCase) Execute(ctx context.Context, cmd CreateTenantCommand) (*dto.TenantDTO, error) {
	existing, err := uc.tenantRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil && !errors.Is(err, tenant.ErrTenantNotFound) {
		uc.logger.Errorw("failed to check tenant slug", "error", err, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to check tenant slug: %w", err)
	}
	if existing != nil {
		return nil, tenant.ErrTenantSlugExists
	}

	tn, err := tenant.NewTenant(cmd.Name, cmd.Slug)
	if err != nil {
		return nil, err
	}

	if err := uc.tenantRepo.Create(ctx, tn); err != nil {
		uc.logger.Errorw("failed to create tenant", "error", err, "slug", cmd.Slug)
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	uc.logger.Infow("tenant created", "tenant_id", tn.ID(), "slug", tn.Slug())
	return dto.ToDTO(tn), nil
}
