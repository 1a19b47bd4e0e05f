package tenant

import (
	"context"
	"time"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
)

// EntitlementUpdate is the atomic write applied to a tenant's four
// entitlement fields by the reconciler and the grant operations.
type EntitlementUpdate struct {
	Plan               subscription.Plan
	EntitlementEnd     *time.Time
	IsTemporaryUpgrade bool
	PriorPlan          *subscription.Plan
}

// Repository persists tenants. Implementations must honor transactions
// placed on ctx by the shared TransactionManager.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uint) (*Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	List(ctx context.Context, page, pageSize int) ([]*Tenant, int64, error)

	// UpdateEntitlement overwrites the entitlement fields unconditionally.
	UpdateEntitlement(ctx context.Context, tenantID uint, update EntitlementUpdate) error

	// UpdateEntitlementIfTemporary applies the update only while the stored
	// temporary-upgrade flag is still true (compare-and-set). When the flag
	// was already cleared by a concurrent reconciliation it returns
	// subscription.ErrLedgerConflict and writes nothing.
	UpdateEntitlementIfTemporary(ctx context.Context, tenantID uint, update EntitlementUpdate) error

	// SetActive toggles the tenant's own active flag.
	SetActive(ctx context.Context, tenantID uint, active bool) error
}
