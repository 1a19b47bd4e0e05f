package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/addon/dto"
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ListAddonsQuery struct {
	TenantID uint
}

type ListAddonsUseCase struct {
	addonRepo addon.Repository
	logger    logger.Interface
}

func NewListAddonsUseCase(addonRepo addon.Repository, logger logger.Interface) *ListAddonsUseCase {
	return &ListAddonsUseCase{
		addonRepo: addonRepo,
		logger:    logger,
	}
}

func (uc *ListAddonsUseCase) Execute(ctx context.Context, q ListAddonsQuery) ([]*dto.GrantDTO, error) {
	grants, err := uc.addonRepo.ListByTenantID(ctx, q.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to list addon grants", "error", err, "tenant_id", q.TenantID)
		return nil, fmt.Errorf("failed to list addon grants: %w", err)
	}
	return dto.ToDTOs(grants), nil
}
