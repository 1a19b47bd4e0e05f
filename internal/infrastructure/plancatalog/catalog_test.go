package plancatalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

const catalogYAML = `
plans:
  basic:
    limits:
      outlets: 1
      staff_users: 3
  pro:
    limits:
      outlets: 5
      staff_users: 15
    features:
      - kitchen_display
  enterprise:
    limits: {}
`

type mockOutletRepo struct {
	mock.Mock
}

func (m *mockOutletRepo) Create(ctx context.Context, o *outlet.Outlet) error {
	return m.Called(ctx, o).Error(0)
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
	return m.Called(ctx, o).Error(0)
}

func (m *mockOutletRepo) CountActiveByTenantID(ctx context.Context, tenantID uint) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOutletRepo) DeactivateBeyond(ctx context.Context, tenantID uint, keep int) (int64, error) {
	args := m.Called(ctx, tenantID, keep)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
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
	return m.Called(ctx, u).Error(0)
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

type mockAddonRepo struct {
	mock.Mock
}

func (m *mockAddonRepo) Create(ctx context.Context, g *addon.Grant) error {
	return m.Called(ctx, g).Error(0)
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
	return m.Called(ctx, g).Error(0)
}

func (m *mockAddonRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func newTestCatalog(t *testing.T, outlets *mockOutletRepo, users *mockUserRepo, addons *mockAddonRepo, now time.Time) *Catalog {
	t.Helper()
	catalog, err := Parse([]byte(catalogYAML), outlets, users, addons, clock.Fixed(now), logger.NewLogger())
	require.NoError(t, err)
	return catalog
}

func TestParse_RejectsUnknownPlan(t *testing.T) {
	_, err := Parse([]byte("plans:\n  platinum:\n    limits: {}\n"), nil, nil, nil, clock.System(), logger.NewLogger())
	assert.ErrorIs(t, err, subscription.ErrInvalidPlan)
}

func TestParse_RejectsUnknownResource(t *testing.T) {
	_, err := Parse([]byte("plans:\n  basic:\n    limits:\n      drones: 2\n"), nil, nil, nil, clock.System(), logger.NewLogger())
	assert.Error(t, err)
}

func TestParse_RejectsEmptyCatalog(t *testing.T) {
	_, err := Parse([]byte("plans: {}\n"), nil, nil, nil, clock.System(), logger.NewLogger())
	assert.Error(t, err)
}

func TestDefaultLimit(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	catalog := newTestCatalog(t, &mockOutletRepo{}, &mockUserRepo{}, &mockAddonRepo{}, now)

	basicOutlets := catalog.DefaultLimit(subscription.PlanBasic, addon.ResourceOutlets)
	require.NotNil(t, basicOutlets)
	assert.Equal(t, 1, *basicOutlets)

	proStaff := catalog.DefaultLimit(subscription.PlanPro, addon.ResourceStaffUsers)
	require.NotNil(t, proStaff)
	assert.Equal(t, 15, *proStaff)

	assert.Nil(t, catalog.DefaultLimit(subscription.PlanEnterprise, addon.ResourceOutlets))
}

func TestApply_ClampsToPlanDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	outlets := &mockOutletRepo{}
	users := &mockUserRepo{}
	addons := &mockAddonRepo{}
	catalog := newTestCatalog(t, outlets, users, addons, now)

	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraOutlets, now).
		Return(nil, addon.ErrGrantNotFound)
	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraStaff, now).
		Return(nil, addon.ErrGrantNotFound)
	outlets.On("DeactivateBeyond", mock.Anything, uint(7), 1).Return(int64(2), nil)
	users.On("DeactivateStaffBeyond", mock.Anything, uint(7), 3).Return(int64(1), nil)

	err := catalog.Apply(context.Background(), 7, subscription.PlanBasic)

	require.NoError(t, err)
	outlets.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestApply_AddonRaisesOutletAllowance(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	outlets := &mockOutletRepo{}
	users := &mockUserRepo{}
	addons := &mockAddonRepo{}
	catalog := newTestCatalog(t, outlets, users, addons, now)

	limit := 10
	grant, err := addon.NewGrant(7, addon.TypeExtraOutlets, &limit, nil)
	require.NoError(t, err)

	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraOutlets, now).
		Return(grant, nil)
	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraStaff, now).
		Return(nil, addon.ErrGrantNotFound)
	outlets.On("DeactivateBeyond", mock.Anything, uint(7), 10).Return(int64(0), nil)
	users.On("DeactivateStaffBeyond", mock.Anything, uint(7), 3).Return(int64(0), nil)

	err = catalog.Apply(context.Background(), 7, subscription.PlanBasic)

	require.NoError(t, err)
	outlets.AssertExpectations(t)
}

func TestApply_AddonRaisesStaffAllowance(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	outlets := &mockOutletRepo{}
	users := &mockUserRepo{}
	addons := &mockAddonRepo{}
	catalog := newTestCatalog(t, outlets, users, addons, now)

	limit := 8
	grant, err := addon.NewGrant(7, addon.TypeExtraStaff, &limit, nil)
	require.NoError(t, err)

	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraOutlets, now).
		Return(nil, addon.ErrGrantNotFound)
	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraStaff, now).
		Return(grant, nil)
	outlets.On("DeactivateBeyond", mock.Anything, uint(7), 1).Return(int64(0), nil)
	users.On("DeactivateStaffBeyond", mock.Anything, uint(7), 8).Return(int64(0), nil)

	err = catalog.Apply(context.Background(), 7, subscription.PlanBasic)

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestApply_UnlimitedPlanTouchesNothing(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	outlets := &mockOutletRepo{}
	users := &mockUserRepo{}
	addons := &mockAddonRepo{}
	catalog := newTestCatalog(t, outlets, users, addons, now)

	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraOutlets, now).
		Return(nil, addon.ErrGrantNotFound)
	addons.On("GetActiveByTenantAndType", mock.Anything, uint(7), addon.TypeExtraStaff, now).
		Return(nil, addon.ErrGrantNotFound)

	err := catalog.Apply(context.Background(), 7, subscription.PlanEnterprise)

	require.NoError(t, err)
	outlets.AssertNotCalled(t, "DeactivateBeyond", mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "DeactivateStaffBeyond", mock.Anything, mock.Anything, mock.Anything)
}
