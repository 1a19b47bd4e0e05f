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

type GrantSubscriptionCommand struct {
	TenantID     uint
	Plan         string
	DurationDays int
	Actor        entitlement.Actor
}

// GrantSubscriptionUseCase installs a fresh plan grant for a tenant: a new
// active period starting now, a matching history entry, and the tenant's
// entitlement fields overwritten. Any temporary-upgrade bookkeeping is
// cleared; a fresh grant supersedes whatever was layered before it.
type GrantSubscriptionUseCase struct {
	tenantRepo  tenant.Repository
	periodRepo  subscription.PeriodRepository
	historyRepo subscription.HistoryRepository
	features    entitlement.PlanFeatureService
	cascade     *entitlement.CascadeActivator
	tx          db.TransactionRunner
	clock       clock.Clock
	logger      logger.Interface
}

func NewGrantSubscriptionUseCase(
	tenantRepo tenant.Repository,
	periodRepo subscription.PeriodRepository,
	historyRepo subscription.HistoryRepository,
	features entitlement.PlanFeatureService,
	cascade *entitlement.CascadeActivator,
	tx db.TransactionRunner,
	clk clock.Clock,
	logger logger.Interface,
) *GrantSubscriptionUseCase {
	return &GrantSubscriptionUseCase{
		tenantRepo:  tenantRepo,
		periodRepo:  periodRepo,
		historyRepo: historyRepo,
		features:    features,
		cascade:     cascade,
		tx:          tx,
		clock:       clk,
		logger:      logger,
	}
}

func (uc *GrantSubscriptionUseCase) Execute(ctx context.Context, cmd GrantSubscriptionCommand) (*dto.PeriodDTO, error) {
	plan, err := subscription.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, err
	}
	if cmd.DurationDays <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d days", cmd.DurationDays)
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
	end := now.AddDate(0, 0, cmd.DurationDays)

	var period *subscription.Period
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		period, err = subscription.NewPeriod(cmd.TenantID, plan, now, end)
		if err != nil {
			return err
		}
		if err := uc.periodRepo.Create(ctx, period); err != nil {
			return fmt.Errorf("failed to create subscription period: %w", err)
		}

		entry, err := subscription.NewHistoryEntry(period.ID(), cmd.TenantID, plan, now, end, false)
		if err != nil {
			return err
		}
		if err := uc.historyRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to record subscription history: %w", err)
		}

		return uc.tenantRepo.UpdateEntitlement(ctx, cmd.TenantID, tenant.EntitlementUpdate{
			Plan:               plan,
			EntitlementEnd:     &end,
			IsTemporaryUpgrade: false,
			PriorPlan:          nil,
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to grant subscription",
			"error", err,
			"tenant_id", cmd.TenantID,
			"plan", plan.String(),
		)
		return nil, err
	}

	uc.logger.Infow("subscription granted",
		"tenant_id", cmd.TenantID,
		"plan", plan.String(),
		"end_date", end,
		"actor_user_id", cmd.Actor.UserID,
	)

	if err := uc.features.Apply(ctx, cmd.TenantID, plan); err != nil {
		uc.logger.Errorw("failed to apply plan features after grant",
			"error", err, "tenant_id", cmd.TenantID, "plan", plan.String())
	}
	if err := uc.cascade.Apply(ctx, cmd.TenantID, true, cmd.Actor); err != nil {
		uc.logger.Errorw("failed to cascade activation after grant",
			"error", err, "tenant_id", cmd.TenantID)
	}

	return dto.PeriodToDTO(period), nil
}
