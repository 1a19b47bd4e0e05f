package entitlement

import (
	"context"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/subscription"
)

// PlanFeatureService is the plan-features collaborator. It knows each plan's
// built-in allowances and can clamp a tenant's resources down to what a newly
// effective plan permits.
type PlanFeatureService interface {
	// Apply disables resources (outlets, staff accounts) beyond what the plan
	// allows. Invoked by the reconciler after any downgrade.
	Apply(ctx context.Context, tenantID uint, plan subscription.Plan) error

	// DefaultLimit returns the plan's built-in cap for a resource, or nil for
	// unlimited. Used when no addon grant overrides the limit.
	DefaultLimit(plan subscription.Plan, resource addon.Resource) *int
}
