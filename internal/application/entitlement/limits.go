package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/clock"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// ErrLimitExceeded is returned by callers that enforce a limit check before
// creating a resource.
var ErrLimitExceeded = errors.New("resource limit exceeded")

// LimitResult reports how a tenant stands against a resource cap.
// A nil Limit means unlimited.
type LimitResult struct {
	Allowed bool `json:"allowed"`
	Current int  `json:"current"`
	Limit   *int `json:"limit"`
}

// UsageCounter supplies current usage counts per resource.
type UsageCounter interface {
	CountUsage(ctx context.Context, tenantID uint, resource addon.Resource) (int64, error)
}

// LimitChecker evaluates addon-scoped numeric limits against current usage.
// An active addon grant overrides the plan's built-in allowance; without one
// the plan catalog's default applies. Pure read, never mutates state.
type LimitChecker struct {
	addons   addon.Repository
	tenants  tenant.Repository
	features PlanFeatureService
	usage    UsageCounter
	clock    clock.Clock
	logger   logger.Interface
}

func NewLimitChecker(
	addons addon.Repository,
	tenants tenant.Repository,
	features PlanFeatureService,
	usage UsageCounter,
	clk clock.Clock,
	logger logger.Interface,
) *LimitChecker {
	return &LimitChecker{
		addons:   addons,
		tenants:  tenants,
		features: features,
		usage:    usage,
		clock:    clk,
		logger:   logger,
	}
}

// CheckLimit reports whether the tenant may add one more unit of resource.
func (c *LimitChecker) CheckLimit(ctx context.Context, tenantID uint, resource addon.Resource) (*LimitResult, error) {
	if !resource.IsValid() {
		return nil, fmt.Errorf("%w: %s", addon.ErrInvalidResource, resource)
	}

	limit, err := c.effectiveLimit(ctx, tenantID, resource)
	if err != nil {
		return nil, err
	}

	current, err := c.usage.CountUsage(ctx, tenantID, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s usage: %w", resource, err)
	}

	return &LimitResult{
		Allowed: limit == nil || int(current) < *limit,
		Current: int(current),
		Limit:   limit,
	}, nil
}

func (c *LimitChecker) effectiveLimit(ctx context.Context, tenantID uint, resource addon.Resource) (*int, error) {
	if addonType, ok := addon.TypeForResource(resource); ok {
		grant, err := c.addons.GetActiveByTenantAndType(ctx, tenantID, addonType, c.clock.Now())
		if err == nil {
			return grant.Limit(), nil
		}
		if !errors.Is(err, addon.ErrGrantNotFound) {
			return nil, err
		}
	}

	tn, err := c.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tn == nil {
		return nil, tenant.ErrTenantNotFound
	}
	return c.features.DefaultLimit(tn.CurrentPlan(), resource), nil
}

// RepositoryUsageCounter counts usage straight from the owning repositories.
type RepositoryUsageCounter struct {
	outlets outlet.Repository
	users   user.Repository
}

func NewRepositoryUsageCounter(outlets outlet.Repository, users user.Repository) *RepositoryUsageCounter {
	return &RepositoryUsageCounter{
		outlets: outlets,
		users:   users,
	}
}

func (c *RepositoryUsageCounter) CountUsage(ctx context.Context, tenantID uint, resource addon.Resource) (int64, error) {
	switch resource {
	case addon.ResourceOutlets:
		return c.outlets.CountActiveByTenantID(ctx, tenantID)
	case addon.ResourceStaffUsers:
		return c.users.CountStaffByTenantID(ctx, tenantID)
	}
	return 0, fmt.Errorf("%w: %s", addon.ErrInvalidResource, resource)
}
