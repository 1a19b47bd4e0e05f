package subscription

import "errors"

var (
	ErrPeriodNotFound  = errors.New("subscription period not found")
	ErrHistoryNotFound = errors.New("subscription history entry not found")
	ErrInvalidPlan     = errors.New("invalid subscription plan")

	// ErrNoSubscription means the tenant has never held any entitlement.
	ErrNoSubscription = errors.New("no subscription")

	// ErrSubscriptionExpired means every grant, including the default plan's,
	// has lapsed.
	ErrSubscriptionExpired = errors.New("subscription expired")

	// ErrHistoryAlreadyReverted is returned by the one-shot reverted flag.
	// A second revert attempt on the same entry must observe this, never a
	// double write.
	ErrHistoryAlreadyReverted = errors.New("history entry already reverted")

	// ErrLedgerConflict signals a lost concurrent write. Transient; the
	// reconciler retries from a fresh read a bounded number of times.
	ErrLedgerConflict = errors.New("ledger write conflict")

	// ErrInvariantViolation means a mutation would have produced an
	// inconsistent ledger. The enclosing transaction must abort.
	ErrInvariantViolation = errors.New("entitlement invariant violation")
)
