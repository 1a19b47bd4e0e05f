// Package entitlement implements the tenant entitlement engine: lazy
// reconciliation of subscription state against the clock, the per-request
// access guard, the activation cascade for dependent staff accounts, and
// addon-scoped limit checks.
package entitlement

import "github.com/sentra-pos/sentra/internal/shared/authorization"

// Actor carries the request context the engine needs: who triggered the
// operation and whether it is an explicit manual user-status edit. The
// cascade never overrides a tenant admin's manual management.
type Actor struct {
	UserID   uint
	TenantID uint
	Role     authorization.UserRole

	// ManualUserEdit is true when the current action is a tenant admin
	// explicitly toggling user status by hand.
	ManualUserEdit bool
}

// SystemActor is used for engine-initiated work with no originating request,
// such as reconciliations triggered by background sweeps.
func SystemActor() Actor {
	return Actor{Role: authorization.RoleSuperAdmin}
}
