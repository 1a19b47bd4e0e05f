// Package plancatalog loads the per-plan allowances from a YAML catalog and
// enforces them when a tenant's effective plan changes.
package plancatalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// planSpec is one plan's entry in the YAML catalog. A limit absent from the
// map means unlimited.
type planSpec struct {
	Limits   map[string]int `yaml:"limits"`
	Features []string       `yaml:"features"`
}

type catalogFile struct {
	Plans map[string]planSpec `yaml:"plans"`
}

// Catalog resolves plan allowances and clamps tenant resources to them.
type Catalog struct {
	plans   map[subscription.Plan]planSpec
	outlets outlet.Repository
	users   user.Repository
	addons  addon.Repository
	clock   clock.Clock
	logger  logger.Interface
}

// Load reads the plan catalog from a YAML file.
func Load(path string, outlets outlet.Repository, users user.Repository, addons addon.Repository, clk clock.Clock, log logger.Interface) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog: %w", err)
	}
	return Parse(data, outlets, users, addons, clk, log)
}

// Parse builds a catalog from raw YAML.
func Parse(data []byte, outlets outlet.Repository, users user.Repository, addons addon.Repository, clk clock.Clock, log logger.Interface) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("plan catalog defines no plans")
	}

	plans := make(map[subscription.Plan]planSpec, len(file.Plans))
	for name, spec := range file.Plans {
		plan, err := subscription.ParsePlan(name)
		if err != nil {
			return nil, fmt.Errorf("plan catalog: %w", err)
		}
		for resource := range spec.Limits {
			if !addon.Resource(resource).IsValid() {
				return nil, fmt.Errorf("plan catalog: plan %s has unknown resource %q", name, resource)
			}
		}
		plans[plan] = spec
	}

	return &Catalog{
		plans:   plans,
		outlets: outlets,
		users:   users,
		addons:  addons,
		clock:   clk,
		logger:  log,
	}, nil
}

// DefaultLimit returns the plan's built-in cap for a resource, or nil for
// unlimited.
func (c *Catalog) DefaultLimit(plan subscription.Plan, resource addon.Resource) *int {
	spec, ok := c.plans[plan]
	if !ok {
		return nil
	}
	limit, ok := spec.Limits[resource.String()]
	if !ok {
		return nil
	}
	return &limit
}

// Apply clamps the tenant's outlets and staff seats to what the newly
// effective plan allows. An active addon for a resource raises its cap
// before clamping. Admin accounts are never deactivated.
func (c *Catalog) Apply(ctx context.Context, tenantID uint, plan subscription.Plan) error {
	if limit := c.effectiveLimit(ctx, tenantID, plan, addon.ResourceOutlets); limit != nil {
		deactivated, err := c.outlets.DeactivateBeyond(ctx, tenantID, *limit)
		if err != nil {
			return fmt.Errorf("failed to clamp outlets for tenant %d: %w", tenantID, err)
		}
		if deactivated > 0 {
			c.logger.Infow("clamped outlets to plan allowance",
				"tenant_id", tenantID,
				"plan", plan,
				"limit", *limit,
				"deactivated", deactivated,
			)
		}
	}

	if limit := c.effectiveLimit(ctx, tenantID, plan, addon.ResourceStaffUsers); limit != nil {
		deactivated, err := c.users.DeactivateStaffBeyond(ctx, tenantID, *limit)
		if err != nil {
			return fmt.Errorf("failed to clamp staff for tenant %d: %w", tenantID, err)
		}
		if deactivated > 0 {
			c.logger.Infow("clamped staff to plan allowance",
				"tenant_id", tenantID,
				"plan", plan,
				"limit", *limit,
				"deactivated", deactivated,
			)
		}
	}

	return nil
}

func (c *Catalog) effectiveLimit(ctx context.Context, tenantID uint, plan subscription.Plan, resource addon.Resource) *int {
	addonType, ok := addon.TypeForResource(resource)
	if ok {
		grant, err := c.addons.GetActiveByTenantAndType(ctx, tenantID, addonType, c.clock.Now())
		if err == nil {
			return grant.Limit()
		}
		if !errors.Is(err, addon.ErrGrantNotFound) {
			c.logger.Warnw("failed to look up addon, using plan default",
				"tenant_id", tenantID,
				"addon_type", addonType,
				"error", err,
			)
		}
	}
	return c.DefaultLimit(plan, resource)
}
