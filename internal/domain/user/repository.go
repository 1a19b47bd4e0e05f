package user

import (
	"context"

	"github.com/sentra-pos/sentra/internal/shared/authorization"
)

// Repository persists user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByTenantID(ctx context.Context, tenantID uint) ([]*User, error)
	Update(ctx context.Context, u *User) error

	// SetActiveByRoles bulk-toggles is_active for every account under the
	// tenant whose role is in roles, returning the number of rows changed.
	// Used by the activation cascade; callers never pass admin roles.
	SetActiveByRoles(ctx context.Context, tenantID uint, roles []authorization.UserRole, active bool) (int64, error)

	// CountStaffByTenantID counts accounts with a staff role under the
	// tenant, active or not. Deactivated staff still occupy a seat.
	CountStaffByTenantID(ctx context.Context, tenantID uint) (int64, error)

	// DeactivateStaffBeyond keeps at most keep active staff accounts under
	// the tenant and deactivates the rest, newest first. Admin accounts are
	// never touched. Returns the number of accounts deactivated.
	DeactivateStaffBeyond(ctx context.Context, tenantID uint, keep int) (int64, error)
}
