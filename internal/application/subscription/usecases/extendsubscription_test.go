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
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/clock"
)

type extendFixture struct {
	tenants    *mockTenantRepo
	periods    *mockPeriodRepo
	history    *mockHistoryRepo
	reconciler *mockReconciler
	users      *mockUserRepo
	uc         *ExtendSubscriptionUseCase
}

func newExtendFixture(now clock.Clock) *extendFixture {
	f := &extendFixture{
		tenants:    new(mockTenantRepo),
		periods:    new(mockPeriodRepo),
		history:    new(mockHistoryRepo),
		reconciler: new(mockReconciler),
		users:      new(mockUserRepo),
	}
	f.uc = NewExtendSubscriptionUseCase(f.tenants, f.periods, f.history, f.reconciler,
		entitlement.NewCascadeActivator(f.users, noopLogger{}),
		passthroughTx{}, now, noopLogger{})
	return f
}

func TestExtendSubscription_ExtendsFromCurrentEnd(t *testing.T) {
	now := date(2024, 1, 15)
	currentEnd := date(2024, 1, 31)
	newEnd := date(2024, 3, 1)
	f := newExtendFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateNormal, TenantActive: true, Plan: subscription.PlanPro, EntitlementEnd: &currentEnd}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.PlanPro, timePtr(currentEnd), false, nil), nil)
	f.periods.On("Create", mock.Anything, mock.MatchedBy(func(p *subscription.Period) bool {
		return p.Plan() == subscription.PlanPro &&
			p.StartDate().Equal(currentEnd) && p.EndDate().Equal(newEnd)
	})).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*subscription.Period).SetID(12))
	}).Return(nil)
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tenants.On("UpdateEntitlement", mock.Anything, uint(1), mock.MatchedBy(func(u tenant.EntitlementUpdate) bool {
		return u.Plan == subscription.PlanPro && u.EntitlementEnd != nil && u.EntitlementEnd.Equal(newEnd)
	})).Return(nil)

	result, err := f.uc.Execute(context.Background(), ExtendSubscriptionCommand{
		TenantID: 1, AdditionalDays: 30, Actor: adminActor(),
	})

	require.NoError(t, err)
	assert.True(t, result.EndDate.Equal(newEnd))
	f.tenants.AssertExpectations(t)
	// The grant never lapsed, so no reactivation cascade runs.
	f.users.AssertNotCalled(t, "SetActiveByRoles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// A lapsed grant resumes from now: the tenant gets the full number of days,
// and the staff accounts the expiry had deactivated come back.
func TestExtendSubscription_LapsedGrantResumesFromNow(t *testing.T) {
	now := date(2024, 2, 10)
	lapsedEnd := date(2024, 1, 31)
	newEnd := date(2024, 3, 11)
	f := newExtendFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateBaseExpired, TenantActive: true, Plan: subscription.DefaultPlan, EntitlementEnd: &lapsedEnd, Changed: true, Downgraded: true}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.DefaultPlan, timePtr(lapsedEnd), false, nil), nil)
	f.periods.On("Create", mock.Anything, mock.MatchedBy(func(p *subscription.Period) bool {
		return p.Plan() == subscription.DefaultPlan &&
			p.StartDate().Equal(now) && p.EndDate().Equal(newEnd)
	})).Run(func(args mock.Arguments) {
		require.NoError(t, args.Get(1).(*subscription.Period).SetID(13))
	}).Return(nil)
	f.history.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tenants.On("UpdateEntitlement", mock.Anything, uint(1), mock.Anything).Return(nil)
	f.users.On("SetActiveByRoles", mock.Anything, uint(1), authorization.CascadeRoles, true).
		Return(int64(3), nil)

	result, err := f.uc.Execute(context.Background(), ExtendSubscriptionCommand{
		TenantID: 1, AdditionalDays: 30, Actor: adminActor(),
	})

	require.NoError(t, err)
	assert.True(t, result.EndDate.Equal(newEnd))
	f.users.AssertExpectations(t)
}

func TestExtendSubscription_RequiresExistingGrant(t *testing.T) {
	f := newExtendFixture(clock.Fixed(date(2024, 1, 15)))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateBaseExpired, TenantActive: true, Plan: subscription.DefaultPlan}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.DefaultPlan, nil, false, nil), nil)

	_, err := f.uc.Execute(context.Background(), ExtendSubscriptionCommand{
		TenantID: 1, AdditionalDays: 30, Actor: adminActor(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, subscription.ErrNoSubscription)
}

func TestExtendSubscription_RejectsActiveTemporaryUpgrade(t *testing.T) {
	now := date(2024, 1, 8)
	upgradeEnd := date(2024, 1, 13)
	prior := subscription.PlanPro
	f := newExtendFixture(clock.Fixed(now))

	f.reconciler.On("Reconcile", mock.Anything, uint(1), mock.Anything).
		Return(&entitlement.Outcome{State: entitlement.StateTempActive, TenantActive: true, Plan: subscription.PlanEnterprise, EntitlementEnd: &upgradeEnd}, nil)
	f.tenants.On("GetByID", mock.Anything, uint(1)).
		Return(reconstructTenant(t, subscription.PlanEnterprise, timePtr(upgradeEnd), true, &prior), nil)

	_, err := f.uc.Execute(context.Background(), ExtendSubscriptionCommand{
		TenantID: 1, AdditionalDays: 30, Actor: adminActor(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, tenant.ErrAlreadyTemporaryUpgrade)
}

func TestExtendSubscription_RejectsNonPositiveDays(t *testing.T) {
	f := newExtendFixture(clock.Fixed(date(2024, 1, 15)))

	_, err := f.uc.Execute(context.Background(), ExtendSubscriptionCommand{
		TenantID: 1, AdditionalDays: -5, Actor: adminActor(),
	})

	require.Error(t, err)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything)
}
