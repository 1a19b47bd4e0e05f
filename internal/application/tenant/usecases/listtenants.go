package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/tenant/dto"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/constants"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ListTenantsQuery struct {
	Page     int
	PageSize int
}

type ListTenantsResult struct {
	Tenants []*dto.TenantDTO `json:"tenants"`
	Total   int64            `json:"total"`
}

type ListTenantsUseCase struct {
	tenantRepo tenant.Repository
	logger     logger.Interface
}

func NewListTenantsUseCase(tenantRepo tenant.Repository, logger logger.Interface) *ListTenantsUseCase {
	return &ListTenantsUseCase{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

func (uc *ListTenantsUseCase) Execute(ctx context.Context, q ListTenantsQuery) (*ListTenantsResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > constants.MaxPageSize {
		q.PageSize = constants.DefaultPageSize
	}

	tenants, total, err := uc.tenantRepo.List(ctx, q.Page, q.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list tenants", "error", err)
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	return &ListTenantsResult{
		Tenants: dto.ToDTOs(tenants),
		Total:   total,
	}, nil
}
