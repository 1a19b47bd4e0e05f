package addon

import (
	"context"
	"time"
)

// Repository persists addon grants.
type Repository interface {
	Create(ctx context.Context, g *Grant) error
	GetByID(ctx context.Context, id uint) (*Grant, error)

	// GetActiveByTenantAndType returns the grant with status=active whose end
	// date is null or after now. Returns ErrGrantNotFound when none.
	GetActiveByTenantAndType(ctx context.Context, tenantID uint, addonType Type, now time.Time) (*Grant, error)

	ListByTenantID(ctx context.Context, tenantID uint) ([]*Grant, error)
	Update(ctx context.Context, g *Grant) error
	Delete(ctx context.Context, id uint) error
}
