package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// State is the derived entitlement state of a tenant at one instant. It is
// computed from the ledger, never stored.
type State string

const (
	// StateNormal: no temporary upgrade, current grant unexpired.
	StateNormal State = "normal"
	// StateTempActive: a temporary upgrade is in effect and unexpired.
	StateTempActive State = "temp_active"
	// StateTempExpired: the temporary upgrade's end date has passed but the
	// revert has not been applied yet.
	StateTempExpired State = "temp_expired"
	// StateBaseExpired: no temporary upgrade and the base entitlement lapsed.
	StateBaseExpired State = "base_expired"
)

// Outcome describes the effective entitlement after reconciliation.
type Outcome struct {
	State          State
	TenantActive   bool
	Plan           subscription.Plan
	EntitlementEnd *time.Time

	// Changed is true when a corrective transition was committed.
	Changed bool
	// Reverted is true when an expired temporary upgrade was reverted with
	// carryover of the prior plan's remaining time.
	Reverted bool
	// Downgraded is true when the tenant fell back to the default plan.
	Downgraded bool
}

// Covered reports whether the effective grant covers the instant.
func (o *Outcome) Covered(now time.Time) bool {
	return o.EntitlementEnd != nil && o.EntitlementEnd.After(now)
}

// Reconciling is what the guard needs from the reconciler.
type Reconciling interface {
	Reconcile(ctx context.Context, tenantID uint, actor Actor) (*Outcome, error)
}

// defaultMaxRetries bounds retries after a lost concurrent ledger write.
const defaultMaxRetries = 3

// Reconciler brings a tenant's stored entitlement into agreement with the
// current time and the period/history ledger. It is invoked lazily whenever
// a tenant's entitlement is consulted; there is no background scheduler.
//
// Reconciliation is safe to call concurrently for the same tenant: every
// corrective transition commits atomically, the revert is guarded by the
// one-shot reverted flag on the consumed history entry, and the tenant write
// is a compare-and-set on the temporary-upgrade flag. A losing writer
// observes a ledger conflict and retries from a fresh read, which then sees
// the winner's state and no-ops.
type Reconciler struct {
	tenants    tenant.Repository
	periods    subscription.PeriodRepository
	history    subscription.HistoryRepository
	features   PlanFeatureService
	cascade    *CascadeActivator
	tx         db.TransactionRunner
	clock      clock.Clock
	logger     logger.Interface
	maxRetries int
}

func NewReconciler(
	tenants tenant.Repository,
	periods subscription.PeriodRepository,
	history subscription.HistoryRepository,
	features PlanFeatureService,
	cascade *CascadeActivator,
	tx db.TransactionRunner,
	clk clock.Clock,
	logger logger.Interface,
) *Reconciler {
	return &Reconciler{
		tenants:    tenants,
		periods:    periods,
		history:    history,
		features:   features,
		cascade:    cascade,
		tx:         tx,
		clock:      clk,
		logger:     logger,
		maxRetries: defaultMaxRetries,
	}
}

// WithMaxRetries overrides the bound on internal retries after a lost
// concurrent ledger write. Non-positive values keep the default.
func (r *Reconciler) WithMaxRetries(n int) *Reconciler {
	if n > 0 {
		r.maxRetries = n
	}
	return r
}

// Reconcile computes the tenant's effective entitlement at the clock's "now"
// and commits any corrective transition that is due. Ledger write conflicts
// are retried internally from a fresh read up to a bounded count.
func (r *Reconciler) Reconcile(ctx context.Context, tenantID uint, actor Actor) (*Outcome, error) {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		outcome, err := r.reconcileOnce(ctx, tenantID, actor)
		if err == nil {
			return outcome, nil
		}
		if !errors.Is(err, subscription.ErrLedgerConflict) {
			return nil, err
		}

		lastErr = err
		r.logger.Warnw("reconciliation lost a concurrent ledger write, retrying",
			"tenant_id", tenantID,
			"attempt", attempt+1,
		)
	}
	return nil, fmt.Errorf("reconciliation exhausted %d retries: %w", r.maxRetries, lastErr)
}

func (r *Reconciler) reconcileOnce(ctx context.Context, tenantID uint, actor Actor) (*Outcome, error) {
	now := r.clock.Now()

	tn, err := r.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}

	if !tn.IsTemporaryUpgrade() {
		return r.reconcileBase(ctx, tn, now, actor)
	}
	return r.reconcileTemporary(ctx, tn, now, actor)
}

// reconcileBase handles tenants with no temporary upgrade in effect: either
// nothing is due, or the base entitlement lapsed and the tenant is
// downgraded to the default plan.
func (r *Reconciler) reconcileBase(ctx context.Context, tn *tenant.Tenant, now time.Time, actor Actor) (*Outcome, error) {
	if tn.HasEntitlementAt(now) {
		return &Outcome{
			State:          StateNormal,
			TenantActive:   tn.IsActive(),
			Plan:           tn.CurrentPlan(),
			EntitlementEnd: tn.EntitlementEnd(),
		}, nil
	}

	if tn.CurrentPlan() == subscription.DefaultPlan {
		// Already at the floor; nothing to correct.
		return &Outcome{
			State:          StateBaseExpired,
			TenantActive:   tn.IsActive(),
			Plan:           tn.CurrentPlan(),
			EntitlementEnd: tn.EntitlementEnd(),
		}, nil
	}

	return r.downgrade(ctx, tn, StateBaseExpired, actor)
}

// reconcileTemporary handles tenants flagged with a temporary upgrade:
// still-active upgrades are left alone, lapsed ones are reverted with
// carryover of the prior plan's unused time, or downgraded when the prior
// grant had already lapsed on its own.
func (r *Reconciler) reconcileTemporary(ctx context.Context, tn *tenant.Tenant, now time.Time, actor Actor) (*Outcome, error) {
	period, err := r.periods.GetActiveTemporaryByTenantID(ctx, tn.ID())
	if err != nil {
		if errors.Is(err, subscription.ErrPeriodNotFound) {
			// The flag is set but no active upgrade period exists. Atomic
			// commits are supposed to make this unrepresentable.
			return nil, fmt.Errorf("%w: tenant %d flagged as temporary upgrade with no active upgrade period",
				subscription.ErrInvariantViolation, tn.ID())
		}
		return nil, err
	}

	if period.EndDate().After(now) {
		return &Outcome{
			State:          StateTempActive,
			TenantActive:   tn.IsActive(),
			Plan:           tn.CurrentPlan(),
			EntitlementEnd: tn.EntitlementEnd(),
		}, nil
	}

	priorPlan := tn.PriorPlan()
	if priorPlan == nil {
		return nil, fmt.Errorf("%w: tenant %d flagged as temporary upgrade with no prior plan",
			subscription.ErrInvariantViolation, tn.ID())
	}

	entry, err := r.history.GetLatestUnreverted(ctx, tn.ID(), *priorPlan)
	if err != nil && !errors.Is(err, subscription.ErrHistoryNotFound) {
		return nil, err
	}

	// The prior plan's own grant must still have time left at this instant.
	// A preserved end date already in the past (stale data, or the base plan
	// simply ran out during the upgrade) yields no residual entitlement.
	if entry == nil || !entry.EndsAfter(now) {
		return r.revertWithoutCarryover(ctx, tn, period, actor)
	}
	return r.revertWithCarryover(ctx, tn, period, entry, now, actor)
}

// revertWithCarryover restores the prior plan, resuming at its original
// absolute end date rather than re-adding remaining days to now.
func (r *Reconciler) revertWithCarryover(
	ctx context.Context,
	tn *tenant.Tenant,
	upgrade *subscription.Period,
	entry *subscription.HistoryEntry,
	now time.Time,
	actor Actor,
) (*Outcome, error) {
	priorPlan := entry.Plan()
	restoredEnd := entry.EndDate()

	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		restored, err := subscription.NewPeriod(tn.ID(), priorPlan, now, restoredEnd)
		if err != nil {
			return fmt.Errorf("%w: %v", subscription.ErrInvariantViolation, err)
		}
		if err := r.periods.Create(ctx, restored); err != nil {
			return err
		}
		if err := r.periods.MarkExpired(ctx, upgrade.ID()); err != nil {
			return err
		}

		// One-shot flag: a concurrent revert that already consumed the entry
		// surfaces here and aborts the whole transaction.
		if err := r.history.MarkReverted(ctx, entry.ID()); err != nil {
			if errors.Is(err, subscription.ErrHistoryAlreadyReverted) {
				return subscription.ErrLedgerConflict
			}
			return err
		}

		restoredEntry, err := subscription.NewHistoryEntry(restored.ID(), tn.ID(), priorPlan, now, restoredEnd, false)
		if err != nil {
			return fmt.Errorf("%w: %v", subscription.ErrInvariantViolation, err)
		}
		if err := r.history.Create(ctx, restoredEntry); err != nil {
			return err
		}

		return r.tenants.UpdateEntitlementIfTemporary(ctx, tn.ID(), tenant.EntitlementUpdate{
			Plan:               priorPlan,
			EntitlementEnd:     &restoredEnd,
			IsTemporaryUpgrade: false,
			PriorPlan:          nil,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Infow("reverted expired temporary upgrade with carryover",
		"tenant_id", tn.ID(),
		"upgrade_plan", upgrade.Plan().String(),
		"restored_plan", priorPlan.String(),
		"restored_end", restoredEnd,
	)

	r.runCascade(ctx, tn.ID(), restoredEnd.After(now), actor)

	return &Outcome{
		State:          StateTempExpired,
		TenantActive:   tn.IsActive(),
		Plan:           priorPlan,
		EntitlementEnd: &restoredEnd,
		Changed:        true,
		Reverted:       true,
	}, nil
}

// revertWithoutCarryover closes the lapsed upgrade and drops the tenant to
// the default plan: the prior plan had already lapsed on its own, so there
// is no residual entitlement to restore.
func (r *Reconciler) revertWithoutCarryover(
	ctx context.Context,
	tn *tenant.Tenant,
	upgrade *subscription.Period,
	actor Actor,
) (*Outcome, error) {
	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := r.periods.MarkExpired(ctx, upgrade.ID()); err != nil {
			return err
		}
		return r.tenants.UpdateEntitlementIfTemporary(ctx, tn.ID(), tenant.EntitlementUpdate{
			Plan:               subscription.DefaultPlan,
			EntitlementEnd:     tn.EntitlementEnd(),
			IsTemporaryUpgrade: false,
			PriorPlan:          nil,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Infow("expired temporary upgrade had no residual prior entitlement, downgrading",
		"tenant_id", tn.ID(),
		"upgrade_plan", upgrade.Plan().String(),
	)

	r.applyPlanFeatures(ctx, tn.ID(), subscription.DefaultPlan)
	r.runCascade(ctx, tn.ID(), false, actor)

	return &Outcome{
		State:          StateTempExpired,
		TenantActive:   tn.IsActive(),
		Plan:           subscription.DefaultPlan,
		EntitlementEnd: tn.EntitlementEnd(),
		Changed:        true,
		Downgraded:     true,
	}, nil
}

// downgrade drops a tenant with a lapsed base entitlement to the default
// plan, clamps over-limit resources, and deactivates dependent staff.
func (r *Reconciler) downgrade(ctx context.Context, tn *tenant.Tenant, state State, actor Actor) (*Outcome, error) {
	err := r.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return r.tenants.UpdateEntitlement(ctx, tn.ID(), tenant.EntitlementUpdate{
			Plan:               subscription.DefaultPlan,
			EntitlementEnd:     tn.EntitlementEnd(),
			IsTemporaryUpgrade: false,
			PriorPlan:          nil,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Infow("downgraded tenant with lapsed entitlement to default plan",
		"tenant_id", tn.ID(),
		"previous_plan", tn.CurrentPlan().String(),
	)

	r.applyPlanFeatures(ctx, tn.ID(), subscription.DefaultPlan)
	r.runCascade(ctx, tn.ID(), false, actor)

	return &Outcome{
		State:          state,
		TenantActive:   tn.IsActive(),
		Plan:           subscription.DefaultPlan,
		EntitlementEnd: tn.EntitlementEnd(),
		Changed:        true,
		Downgraded:     true,
	}, nil
}

// Side effects run after the ledger transaction has committed. They touch
// disjoint fields, so a failure here never rolls back the reconciliation;
// it is logged and the outcome stands.
func (r *Reconciler) applyPlanFeatures(ctx context.Context, tenantID uint, plan subscription.Plan) {
	if err := r.features.Apply(ctx, tenantID, plan); err != nil {
		r.logger.Errorw("failed to apply plan features after downgrade",
			"tenant_id", tenantID,
			"plan", plan.String(),
			"error", err,
		)
	}
}

func (r *Reconciler) runCascade(ctx context.Context, tenantID uint, becameActive bool, actor Actor) {
	if err := r.cascade.Apply(ctx, tenantID, becameActive, actor); err != nil {
		r.logger.Errorw("failed to apply activation cascade",
			"tenant_id", tenantID,
			"active", becameActive,
			"error", err,
		)
	}
}
