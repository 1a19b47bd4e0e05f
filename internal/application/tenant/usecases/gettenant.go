package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/tenant/dto"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type GetTenantQuery struct {
	TenantID uint
}

type GetTenantUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewGetTenantUseCase(tenantRepo tenant.Repository, logger logger.Interface) *GetTenantUseCase {
	return &GetTenantUseCase{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

func (uc *GetTenantUseCase) Execute(ctx context.Context, q GetTenantQuery) (*dto.TenantDTO, error) {
	tn, err := uc.tenantRepo.GetByID(ctx, q.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}
	return dto.ToDTO(tn), nil
}
