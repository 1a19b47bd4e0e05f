package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/outlet/dto"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ListOutletsQuery struct {
	TenantID uint
}

type ListOutletsUseCase struct {
	outletRepo outlet.Repository
	logger     logger.Interface
}

func NewListOutletsUseCase(outletRepo outlet.Repository, logger logger.Interface) *ListOutletsUseCase {
	return &ListOutletsUseCase{
		outletRepo: outletRepo,
		logger:     logger,
	}
}

func (uc *ListOutletsUseCase) Execute(ctx context.Context, q ListOutletsQuery) ([]*dto.OutletDTO, error) {
	outlets, err := uc.outletRepo.ListByTenantID(ctx, q.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to list outlets", "error", err, "tenant_id", q.TenantID)
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}
	return dto.ToDTOs(outlets), nil
}
