package authz

import (
	"fmt"

	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// SeedDefaultPolicies installs the built-in role matrix. AddPolicy is a no-op
// for rows that already exist, so seeding is idempotent across restarts.
func (e *Enforcer) SeedDefaultPolicies(log logger.Interface) error {
	policies := [][]string{
		// Platform operators manage every tenant's lifecycle.
		{"super_admin", "tenants", "read"},
		{"super_admin", "tenants", "write"},
		{"super_admin", "subscriptions", "read"},
		{"super_admin", "subscriptions", "write"},
		{"super_admin", "addons", "read"},
		{"super_admin", "addons", "write"},
		{"super_admin", "users", "read"},
		{"super_admin", "users", "write"},
		{"super_admin", "outlets", "read"},
		{"super_admin", "outlets", "write"},

		// Tenant owners manage their own staff and outlets, and can see
		// their subscription standing.
		{"admin_tenant", "tenants", "read"},
		{"admin_tenant", "subscriptions", "read"},
		{"admin_tenant", "addons", "read"},
		{"admin_tenant", "users", "read"},
		{"admin_tenant", "users", "write"},
		{"admin_tenant", "outlets", "read"},
		{"admin_tenant", "outlets", "write"},

		// Floor staff only read what they need to run a shift.
		{"supervisor", "users", "read"},
		{"supervisor", "outlets", "read"},
		{"supervisor", "subscriptions", "read"},
		{"cashier", "outlets", "read"},
		{"kitchen", "outlets", "read"},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			log.Errorw("failed to seed policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to seed policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := e.enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save seeded policies: %w", err)
	}

	log.Info("default role policies seeded")
	return nil
}
