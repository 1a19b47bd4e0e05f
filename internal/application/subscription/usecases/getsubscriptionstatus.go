package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/application/subscription/dto"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type GetSubscriptionStatusQuery struct {
	TenantID uint
	Actor    entitlement.Actor
}

// GetSubscriptionStatusUseCase reports a tenant's effective entitlement plus
// the subscription periods currently in force. Reading the status is itself
// a reconciliation trigger: any transition that became due is committed
// before the answer is produced.
type GetSubscriptionStatusUseCase struct {
	reconciler entitlement.Reconciling
	periodRepo subscription.PeriodRepository
	clock      clock.Clock
	logger     logger.Interface
}

func NewGetSubscriptionStatusUseCase(
	reconciler entitlement.Reconciling,
	periodRepo subscription.PeriodRepository,
	clk clock.Clock,
	logger logger.Interface,
) *GetSubscriptionStatusUseCase {
	return &GetSubscriptionStatusUseCase{
		reconciler: reconciler,
		periodRepo: periodRepo,
		clock:      clk,
		logger:     logger,
	}
}

func (uc *GetSubscriptionStatusUseCase) Execute(ctx context.Context, q GetSubscriptionStatusQuery) (*dto.StatusDTO, error) {
	outcome, err := uc.reconciler.Reconcile(ctx, q.TenantID, q.Actor)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile entitlement: %w", err)
	}

	periods, err := uc.periodRepo.GetActiveByTenantID(ctx, q.TenantID, uc.clock.Now())
	if err != nil {
		uc.logger.Errorw("failed to list active periods", "error", err, "tenant_id", q.TenantID)
		return nil, fmt.Errorf("failed to list active periods: %w", err)
	}

	status := dto.OutcomeToStatusDTO(q.TenantID, outcome)
	status.ActivePeriods = make([]*dto.PeriodDTO, 0, len(periods))
	for _, p := range periods {
		status.ActivePeriods = append(status.ActivePeriods, dto.PeriodToDTO(p))
	}
	return status, nil
}
