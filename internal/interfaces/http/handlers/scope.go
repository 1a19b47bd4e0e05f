package handlers

import (
	"github.com/sentra-pos/sentra/internal/application/entitlement"
)

// tenantScopeAllowed reports whether the actor may act on the given tenant.
// Platform operators carry no tenant of their own and may reach any tenant;
// everyone else is confined to their own.
func tenantScopeAllowed(actor entitlement.Actor, tenantID uint) bool {
	return actor.TenantID == 0 || actor.TenantID == tenantID
}
