package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/shared/clock"
)

type upgradeFixture struct {
	tenants    *mockTenantRepo
	periods    *mockPeriodRepo
	history    *mockHistoryRepo
	reconciler *mockReconciler
	features   *mockPlanFeatures
	uc         *TemporaryUpgradeUseCase
}

func newUpgradeFixture(now clock.Clock) *upgradeFixture {
	f := &upgradeFixture{
		tenants:    new(mockTenantRepo),
		periods:    new(mockPeriodRepo),
		history:    new(mockHistoryRepo),
		reconciler: new(mockReconciler),
		features:   new(mockPlanFeatures),
	}
	f.uc = NewTemporaryUpgradeUseCase(f.tenants, f.periods, f.history, f.reconciler,
		f.features, passthroughTx{}, now, noopLogger{})
	return f
}

func TestTemporaryUpgrade_LayersHigherPlanOverCurrentGrant(t *testing.T) {
	now := date(2024, 1, 6)
	upgradeEnd := date(2024, 1, 13)
	baseEnd := date(2024, 1, 31)
	f := newUpgradeFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateNormal, TenantActive: true, Plan: subscription.PlanPro, EntitlementEnd: &baseEnd}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.PlanPro, timePtr(baseEnd), false, nil), nil)
	f.periods.On("Create", mock.Anything, mock.MatchedBy(func(p *subscription.Period) bool {
		return p.Plan() == subscription.PlanEnterprise &&
			p.IsTemporaryUpgrade() &&
			p.PriorPlan() != nil && *p.PriorPlan() == subscription.PlanPro &&
			p.EndDate().Equal(upgradeEnd)
	})).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*subscription.Period).SetID(10))
	}).Return(nil)
	f.history.On("Create", mock.Anything, mock.MatchedBy(func(e *subscription.HistoryEntry) bool {
		return e.PeriodID() == 10 && e.Plan() == subscription.PlanEnterprise && e.IsTemporaryUpgrade()
	})).Return(nil)
	f.tenants.On("UpdateEntitlement", mock.Anything, uint(1), mock.MatchedBy(func(u tenant.EntitlementUpdate) bool {
		return u.Plan == subscription.PlanEnterprise &&
			u.EntitlementEnd != nil && u.EntitlementEnd.Equal(upgradeEnd) &&
			u.IsTemporaryUpgrade &&
			u.PriorPlan != nil && *u.PriorPlan == subscription.PlanPro
	})).Return(nil)
	f.features.On("Apply", mock.Anything, uint(1), subscription.PlanEnterprise).Return(nil)

	result, err := f.uc.Execute(context.Background(), TemporaryUpgradeCommand{
		TenantID: 1, Plan: "enterprise", DurationDays: 7, Actor: adminActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, "enterprise", result.Plan)
	assert.True(t, result.IsTemporaryUpgrade)
	require.NotNil(t, result.PriorPlan)
	assert.Equal(t, "pro", *result.PriorPlan)
	f.tenants.AssertExpectations(t)
	f.periods.AssertExpectations(t)
	f.history.AssertExpectations(t)
}

func TestTemporaryUpgrade_RejectsSecondConcurrentUpgrade(t *testing.T) {
	now := date(2024, 1, 8)
	upgradeEnd := date(2024, 1, 13)
	prior := subscription.PlanPro
	f := newUpgradeFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateTempActive, TenantActive: true, Plan: subscription.PlanEnterprise, EntitlementEnd: &upgradeEnd}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.PlanEnterprise, timePtr(upgradeEnd), true, &prior), nil)

	_, err := f.uc.Execute(context.Background(), TemporaryUpgradeCommand{
		TenantID: 1, Plan: "enterprise", DurationDays: 7, Actor: adminActor(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, tenant.ErrAlreadyTemporaryUpgrade)
	f.periods.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemporaryUpgrade_RejectsNonUpgrade(t *testing.T) {
	now := date(2024, 1, 6)
	baseEnd := date(2024, 1, 31)
	f := newUpgradeFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateNormal, TenantActive: true, Plan: subscription.PlanPro, EntitlementEnd: &baseEnd}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.PlanPro, timePtr(baseEnd), false, nil), nil)

	// Same tier is not an upgrade.
	_, err := f.uc.Execute(context.Background(), TemporaryUpgradeCommand{
		TenantID: 1, Plan: "pro", DurationDays: 7, Actor: adminActor(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, tenant.ErrNotAnUpgrade)
}

func TestTemporaryUpgrade_RequiresLiveEntitlement(t *testing.T) {
	now := date(2024, 1, 6)
	f := newUpgradeFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateBaseExpired, TenantActive: true, Plan: subscription.DefaultPlan}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.DefaultPlan, nil, false, nil), nil)

	_, err := f.uc.Execute(context.Background(), TemporaryUpgradeCommand{
		TenantID: 1, Plan: "pro", DurationDays: 7, Actor: adminActor(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, subscription.ErrNoSubscription)
}
