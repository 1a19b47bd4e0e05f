package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/application/subscription/dto"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ExtendSubscriptionCommand struct {
	TenantID       uint
	AdditionalDays int
	Actor          entitlement.Actor
}

// ExtendSubscriptionUseCase pushes the tenant's current grant further out on
// the same plan. A lapsed grant resumes from now rather than from its old
// end date, so the extension always buys the full number of days. Tenants
// inside a temporary upgrade window are reconciled first; the extension then
// applies to whatever plan survived the reconciliation.
type ExtendSubscriptionUseCase struct {
	tenantRepo  tenant.Repository
	periodRepo  subscription.PeriodRepository
	historyRepo subscription.HistoryRepository
	reconciler  entitlement.Reconciling
	cascade     *entitlement.CascadeActivator
	tx          db.TransactionRunner
	clock       clock.Clock
	logger      logger.Interface
}

func NewExtendSubscriptionUseCase(
	tenantRepo tenant.Repository,
	periodRepo subscription.PeriodRepository,
	historyRepo subscription.HistoryRepository,
	reconciler entitlement.Reconciling,
	cascade *entitlement.CascadeActivator,
	tx db.TransactionRunner,
	clk clock.Clock,
	logger logger.Interface,
) *ExtendSubscriptionUseCase {
	return &ExtendSubscriptionUseCase{
		tenantRepo:  tenantRepo,
		periodRepo:  periodRepo,
		historyRepo: historyRepo,
		reconciler:  reconciler,
		cascade:     cascade,
		tx:          tx,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *ExtendSubscriptionUseCase) Execute(ctx context.Context, cmd ExtendSubscriptionCommand) (*dto.PeriodDTO, error) {
	if cmd.AdditionalDays <= 0 {
		return nil, fmt.Errorf("additional days must be positive, got %d", cmd.AdditionalDays)
	}

	if _, err := uc.reconciler.Reconcile(ctx, cmd.TenantID, cmd.Actor); err != nil {
		return nil, fmt.Errorf("failed to reconcile before extension: %w", err)
	}

	tn, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}
	if tn.EntitlementEnd() == nil {
		return nil, subscription.ErrNoSubscription
	}
	if tn.IsTemporaryUpgrade() {
		// Reconciliation left an unexpired upgrade in place; extending the
		// base grant underneath it would desynchronize the revert target.
		return nil, tenant.ErrAlreadyTemporaryUpgrade
	}

	now := uc.clock.Now()
	plan := tn.CurrentPlan()
	wasLapsed := !tn.HasEntitlementAt(now)

	start := now
	if !wasLapsed {
		start = *tn.EntitlementEnd()
	}
	end := start.AddDate(0, 0, cmd.AdditionalDays)

	var period *subscription.Period
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		period, err = subscription.NewPeriod(cmd.TenantID, plan, start, end)
		if err != nil {
			return err
		}
		if err := uc.periodRepo.Create(ctx, period); err != nil {
			return fmt.Errorf("failed to create extension period: %w", err)
		}

		entry, err := subscription.NewHistoryEntry(period.ID(), cmd.TenantID, plan, start, end, false)
		if err != nil {
			return err
		}
		if err := uc.historyRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record extension history: %w", err)
		}

		return uc.tenantRepo.UpdateEntitlement(ctx, cmd.TenantID, tenant.EntitlementUpdate{
			Plan:               plan,
			EntitlementEnd:     &end,
			IsTemporaryUpgrade: false,
			PriorPlan:          nil,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to extend subscription",
			"error", err,
			"tenant_id", cmd.TenantID,
		)
		return nil, err
	}

	uc.logger.Infow("subscription extended",
		"tenant_id", cmd.TenantID,
		"plan", plan.String(),
		"new_end_date", end,
		"was_lapsed", wasLapsed,
		"actor_user_id", cmd.Actor.UserID,
	)

	if wasLapsed {
		if err := uc.cascade.Apply(ctx, cmd.TenantID, true, cmd.Actor); err != nil {
			uc.logger.Errorw("failed to cascade activation after extension",
				"error", err, "tenant_id", cmd.TenantID)
		}
	}

	return dto.PeriodToDTO(period), nil
}
