package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/subscription/dto"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ListSubscriptionHistoryQuery struct {
	TenantID uint
}

// ListSubscriptionHistoryUseCase returns the tenant's full transition audit
// trail, newest first.
type ListSubscriptionHistoryUseCase struct {
	historyRepo subscription.HistoryRepository
	logger      logger.Interface
}

func NewListSubscriptionHistoryUseCase(historyRepo subscription.HistoryRepository, logger logger.Interface) *ListSubscriptionHistoryUseCase {
	return &ListSubscriptionHistoryUseCase{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

func (uc *ListSubscriptionHistoryUseCase) Execute(ctx context.Context, q ListSubscriptionHistoryQuery) ([]*dto.HistoryEntryDTO, error) {
	entries, err := uc.historyRepo.ListByTenantID(ctx, q.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to list subscription history", "error", err, "tenant_id", q.TenantID)
		return nil, fmt.Errorf("failed to list subscription history: %w", err)
	}

	result := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.HistoryEntryToDTO(e))
	}
	return result, nil
}
