package entitlement

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// --- logger ---

type noopLogger struct{}

func (noopLogger) Debug(string, ...any)           {}
func (noopLogger) Info(string, ...any)            {}
func (noopLogger) Warn(string, ...any)            {}
func (noopLogger) Error(string, ...any)           {}
func (noopLogger) With(...any) logger.Interface   { return noopLogger{} }
func (noopLogger) Named(string) logger.Interface  { return noopLogger{} }
func (noopLogger) Debugw(string, ...any)          {}
func (noopLogger) Infow(string, ...any)           {}
func (noopLogger) Warnw(string, ...any)           {}
func (noopLogger) Errorw(string, ...any)          {}

// --- transactions ---

// passthroughTx runs the unit of work directly; atomicity itself is the
// database's job and is not under test here.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- tenant repository ---

type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *mockTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTenantRepo) List(ctx context.Context, page, pageSize int) ([]*tenant.Tenant, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*tenant.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *mockTenantRepo) UpdateEntitlement(ctx context.Context, tenantID uint, update tenant.EntitlementUpdate) error {
	args := m.Called(ctx, tenantID, update)
	return args.Error(0)
}

func (m *mockTenantRepo) UpdateEntitlementIfTemporary(ctx context.Context, tenantID uint, update tenant.EntitlementUpdate) error {
	args := m.Called(ctx, tenantID, update)
	return args.Error(0)
}

func (m *mockTenantRepo) SetActive(ctx context.Context, tenantID uint, active bool) error {
	args := m.Called(ctx, tenantID, active)
	return args.Error(0)
}

// --- period repository ---

type mockPeriodRepo struct {
	mock.Mock
}

func (m *mockPeriodRepo) Create(ctx context.Context, p *subscription.Period) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPeriodRepo) GetByID(ctx context.Context, id uint) (*subscription.Period, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Period), args.Error(1)
}

func (m *mockPeriodRepo) GetActiveByTenantID(ctx context.Context, tenantID uint, now time.Time) ([]*subscription.Period, error) {
	args := m.Called(ctx, tenantID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Period), args.Error(1)
}

func (m *mockPeriodRepo) GetActiveTemporaryByTenantID(ctx context.Context, tenantID uint) (*subscription.Period, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Period), args.Error(1)
}

func (m *mockPeriodRepo) MarkExpired(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPeriodRepo) ListByTenantID(ctx context.Context, tenantID uint) ([]*subscription.Period, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Period), args.Error(1)
}

// --- history repository ---

type mockHistoryRepo struct {
	mock.Mock
}

func (m *mockHistoryRepo) Create(ctx context.Context, e *subscription.HistoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockHistoryRepo) GetByID(ctx context.Context, id uint) (*subscription.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.HistoryEntry), args.Error(1)
}

func (m *mockHistoryRepo) GetLatestUnreverted(ctx context.Context, tenantID uint, plan subscription.Plan) (*subscription.HistoryEntry, error) {
	args := m.Called(ctx, tenantID, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.HistoryEntry), args.Error(1)
}

func (m *mockHistoryRepo) MarkReverted(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockHistoryRepo) ListByTenantID(ctx context.Context, tenantID uint) ([]*subscription.HistoryEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.HistoryEntry), args.Error(1)
}

// --- user repository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepo) ListByTenantID(ctx context.Context, tenantID uint) ([]*user.User, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) SetActiveByRoles(ctx context.Context, tenantID uint, roles []authorization.UserRole, active bool) (int64, error) {
	args := m.Called(ctx, tenantID, roles, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) CountStaffByTenantID(ctx context.Context, tenantID uint) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) DeactivateStaffBeyond(ctx context.Context, tenantID uint, keep int) (int64, error) {
	args := m.Called(ctx, tenantID, keep)
	return args.Get(0).(int64), args.Error(1)
}

// --- addon repository ---

type mockAddonRepo struct {
	mock.Mock
}

func (m *mockAddonRepo) Create(ctx context.Context, g *addon.Grant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockAddonRepo) GetByID(ctx context.Context, id uint) (*addon.Grant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*addon.Grant), args.Error(1)
}

func (m *mockAddonRepo) GetActiveByTenantAndType(ctx context.Context, tenantID uint, addonType addon.Type, now time.Time) (*addon.Grant, error) {
	args := m.Called(ctx, tenantID, addonType, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*addon.Grant), args.Error(1)
}

func (m *mockAddonRepo) ListByTenantID(ctx context.Context, tenantID uint) ([]*addon.Grant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*addon.Grant), args.Error(1)
}

func (m *mockAddonRepo) Update(ctx context.Context, g *addon.Grant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockAddonRepo) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- outlet repository ---

type mockOutletRepo struct {
	mock.Mock
}

func (m *mockOutletRepo) Create(ctx context.Context, o *outlet.Outlet) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOutletRepo) GetByID(ctx context.Context, id uint) (*outlet.Outlet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outlet.Outlet), args.Error(1)
}

func (m *mockOutletRepo) ListByTenantID(ctx context.Context, tenantID uint) ([]*outlet.Outlet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outlet.Outlet), args.Error(1)
}

func (m *mockOutletRepo) Update(ctx context.Context, o *outlet.Outlet) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOutletRepo) CountActiveByTenantID(ctx context.Context, tenantID uint) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOutletRepo) DeactivateBeyond(ctx context.Context, tenantID uint, keep int) (int64, error) {
	args := m.Called(ctx, tenantID, keep)
	return args.Get(0).(int64), args.Error(1)
}

// --- plan features ---

type mockPlanFeatures struct {
	mock.Mock
}

func (m *mockPlanFeatures) Apply(ctx context.Context, tenantID uint, plan subscription.Plan) error {
	args := m.Called(ctx, tenantID, plan)
	return args.Error(0)
}

func (m *mockPlanFeatures) DefaultLimit(plan subscription.Plan, resource addon.Resource) *int {
	args := m.Called(plan, resource)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*int)
}

// --- usage counter ---

type mockUsageCounter struct {
	mock.Mock
}

func (m *mockUsageCounter) CountUsage(ctx context.Context, tenantID uint, resource addon.Resource) (int64, error) {
	args := m.Called(ctx, tenantID, resource)
	return args.Get(0).(int64), args.Error(1)
}

// --- reconciler (for guard tests) ---

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context, tenantID uint, actor Actor) (*Outcome, error) {
	args := m.Called(ctx, tenantID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Outcome), args.Error(1)
}
