package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sentra-pos/sentra/internal/shared/authorization"
)

func TestCascade_TogglesStaffRolesOnly(t *testing.T) {
	users := new(mockUserRepo)
	cascade := NewCascadeActivator(users, noopLogger{})

	users.On("SetActiveByRoles", mock.Anything, testTenantID, authorization.CascadeRoles, true).
		Return(int64(4), nil)

	err := cascade.Apply(context.Background(), testTenantID, true,
		Actor{UserID: 9, Role: authorization.RoleCashier})

	require.NoError(t, err)
	users.AssertExpectations(t)
	// Admin roles are never part of the cascade set.
	for _, role := range authorization.CascadeRoles {
		assert.True(t, role.IsStaff())
	}
}

func TestCascade_Deactivation(t *testing.T) {
	users := new(mockUserRepo)
	cascade := NewCascadeActivator(users, noopLogger{})

	users.On("SetActiveByRoles", mock.Anything, testTenantID, authorization.CascadeRoles, false).
		Return(int64(2), nil)

	err := cascade.Apply(context.Background(), testTenantID, false, SystemActor())

	require.NoError(t, err)
	users.AssertExpectations(t)
}

// A tenant admin hand-editing user status owns that decision; the engine
// must not immediately overwrite it.
func TestCascade_SkipsManualEditByTenantAdmin(t *testing.T) {
	users := new(mockUserRepo)
	cascade := NewCascadeActivator(users, noopLogger{})

	err := cascade.Apply(context.Background(), testTenantID, true, Actor{
		UserID:         2,
		TenantID:       testTenantID,
		Role:           authorization.RoleAdminTenant,
		ManualUserEdit: true,
	})

	require.NoError(t, err)
	users.AssertNotCalled(t, "SetActiveByRoles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The skip is specific to tenant admins: a super admin's manual edit still
// cascades, and a tenant admin outside a manual edit cascades too.
func TestCascade_SkipRequiresTenantAdminAndManualEdit(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
	}{
		{"super admin manual edit", Actor{Role: authorization.RoleSuperAdmin, ManualUserEdit: true}},
		{"tenant admin without manual edit", Actor{Role: authorization.RoleAdminTenant}},
		{"cashier", Actor{Role: authorization.RoleCashier}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mockUserRepo)
			cascade := NewCascadeActivator(users, noopLogger{})

			users.On("SetActiveByRoles", mock.Anything, testTenantID, authorization.CascadeRoles, true).
				Return(int64(1), nil)

			err := cascade.Apply(context.Background(), testTenantID, true, tt.actor)

			require.NoError(t, err)
			users.AssertExpectations(t)
		})
	}
}

func TestCascade_RepositoryErrorPropagates(t *testing.T) {
	users := new(mockUserRepo)
	cascade := NewCascadeActivator(users, noopLogger{})

	users.On("SetActiveByRoles", mock.Anything, testTenantID, authorization.CascadeRoles, false).
		Return(int64(0), errors.New("db down"))

	err := cascade.Apply(context.Background(), testTenantID, false, SystemActor())

	require.Error(t, err)
}
