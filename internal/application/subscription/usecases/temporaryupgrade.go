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

type TemporaryUpgradeCommand struct {
	TenantID     uint
	Plan         string
	DurationDays int
	Actor        entitlement.Actor
}

// TemporaryUpgradeUseCase layers a time-boxed higher-tier plan on top of the
// tenant's current grant. The current plan is remembered so the engine can
// restore it, at its original end date, once the upgrade window lapses. Only
// one temporary upgrade may be in flight per tenant.
type TemporaryUpgradeUseCase struct {
	tenantRepo  tenant.Repository
	periodRepo  subscription.PeriodRepository
	historyRepo subscription.HistoryRepository
	reconciler  entitlement.Reconciling
	features    entitlement.PlanFeatureService
	tx          db.TransactionRunner
	clock       clock.Clock
	logger      logger.Interface
}

func NewTemporaryUpgradeUseCase(
	tenantRepo tenant.Repository,
	periodRepo subscription.PeriodRepository,
	historyRepo subscription.HistoryRepository,
	reconciler entitlement.Reconciling,
	features entitlement.PlanFeatureService,
	tx db.TransactionRunner,
	clk clock.Clock,
	logger logger.Interface,
) *TemporaryUpgradeUseCase {
	return &TemporaryUpgradeUseCase{
		tenantRepo:  tenantRepo,
		periodRepo:  periodRepo,
		historyRepo: historyRepo,
		reconciler:  reconciler,
		features:    features,
		tx:          tx,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *TemporaryUpgradeUseCase) Execute(ctx context.Context, cmd TemporaryUpgradeCommand) (*dto.PeriodDTO, error) {
	plan, err := subscription.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, err
	}
	if cmd.DurationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d days", cmd.DurationDays)
	}

	// Settle any lapsed upgrade first so the checks below see current state,
	// not a stale flag that was due for revert anyway.
	if _, err := uc.reconciler.Reconcile(ctx, cmd.TenantID, cmd.Actor); err != nil {
		return nil, fmt.Errorf("failed to reconcile before upgrade: %w", err)
	}

	tn, err := uc.tenantRepo.GetByID(ctx, cmd.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to get tenant", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}

	now := uc.clock.Now()
	if !tn.HasEntitlementAt(now) {
		return nil, subscription.ErrNoSubscription
	}

	priorPlan := tn.CurrentPlan()
	end := now.AddDate(0, 0, cmd.DurationDays)
	if err := tn.BeginTemporaryUpgrade(plan, end); err != nil {
		return nil, err
	}

	var period *subscription.Period
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		period, err = subscription.NewTemporaryUpgradePeriod(cmd.TenantID, plan, priorPlan, now, end)
		if err != nil {
			return err
		}
		if err := uc.periodRepo.Create(ctx, period); err != nil {
			return fmt.Errorf("failed to create upgrade period: %w", err)
		}

		entry, err := subscription.NewHistoryEntry(period.ID(), cmd.TenantID, plan, now, end, true)
		if err != nil {
			return err
		}
		if err := uc.historyRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record upgrade history: %w", err)
		}

		return uc.tenantRepo.UpdateEntitlement(ctx, cmd.TenantID, tenant.EntitlementUpdate{
			Plan:               plan,
			EntitlementEnd:     &end,
			IsTemporaryUpgrade: true,
			PriorPlan:          &priorPlan,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to apply temporary upgrade",
			"error", err,
			"tenant_id", cmd.TenantID,
			"plan", plan.String(),
		)
		return nil, err
	}

	uc.logger.Infow("temporary upgrade applied",
		"tenant_id", cmd.TenantID,
		"plan", plan.String(),
		"prior_plan", priorPlan.String(),
		"end_date", end,
		"actor_user_id", cmd.Actor.UserID,
	)

	if err := uc.features.Apply(ctx, cmd.TenantID, plan); err != nil {
		uc.logger.Errorw("failed to apply plan features after upgrade",
			"error", err, "tenant_id", cmd.TenantID, "plan", plan.String())
	}

	return dto.PeriodToDTO(period), nil
}
