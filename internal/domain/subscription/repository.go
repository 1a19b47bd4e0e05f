package subscription

import (
	"context"
	"time"
)

// PeriodRepository persists subscription periods.
//
// Implementations must honor transactions placed on ctx by the shared
// TransactionManager: all mutations of one reconciliation commit atomically.
type PeriodRepository interface {
	Create(ctx context.Context, period *Period) error
	GetByID(ctx context.Context, id uint) (*Period, error)

	// GetActiveByTenantID returns periods with status=active whose end date
	// has not passed at now, ordered by end date descending.
	GetActiveByTenantID(ctx context.Context, tenantID uint, now time.Time) ([]*Period, error)

	// GetActiveTemporaryByTenantID returns the latest period with
	// status=active and the temporary-upgrade flag set, regardless of whether
	// its end date has already passed. Returns ErrPeriodNotFound when none.
	GetActiveTemporaryByTenantID(ctx context.Context, tenantID uint) (*Period, error)

	// MarkExpired transitions the period's status to expired.
	MarkExpired(ctx context.Context, id uint) error

	ListByTenantID(ctx context.Context, tenantID uint) ([]*Period, error)
}

// HistoryRepository persists the append-only transition audit trail.
type HistoryRepository interface {
	Create(ctx context.Context, entry *HistoryEntry) error
	GetByID(ctx context.Context, id uint) (*HistoryEntry, error)

	// GetLatestUnreverted returns the most recent (by created_at)
	// non-temporary entry for the given tenant and plan that has not been
	// consumed by a revert. Returns ErrHistoryNotFound when none.
	GetLatestUnreverted(ctx context.Context, tenantID uint, plan Plan) (*HistoryEntry, error)

	// MarkReverted flips the one-shot reverted flag. It must be a
	// compare-and-set on reverted=false; when the flag was already set, the
	// implementation returns ErrHistoryAlreadyReverted so a concurrent
	// second revert can never consume the same entry twice.
	MarkReverted(ctx context.Context, id uint) error

	ListByTenantID(ctx context.Context, tenantID uint) ([]*HistoryEntry, error)
}
