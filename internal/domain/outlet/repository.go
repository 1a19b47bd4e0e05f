package outlet

import (
	"context"
	"errors"
)

var ErrOutletNotFound = errors.New("outlet not found")

// Repository persists outlets.
type Repository interface {
	Create(ctx context.Context, o *Outlet) error
	GetByID(ctx context.Context, id uint) (*Outlet, error)
	ListByTenantID(ctx context.Context, tenantID uint) ([]*Outlet, error)
	Update(ctx context.Context, o *Outlet) error

	// CountActiveByTenantID counts outlets currently active for the tenant.
	CountActiveByTenantID(ctx context.Context, tenantID uint) (int64, error)

	// DeactivateBeyond deactivates the newest active outlets so that at most
	// keep remain active, returning the number deactivated. Used when a plan
	// downgrade lowers the outlet allowance.
	DeactivateBeyond(ctx context.Context, tenantID uint, keep int) (int64, error)
}
