package tenant

import (
	"fmt"
	"time"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
)

// Tenant is one customer account, the unit of billing and data isolation.
// The four entitlement fields (current plan, entitlement end, temporary
// upgrade flag, prior plan) are owned exclusively by the entitlement engine
// and the explicit administrative grant operations.
type Tenant struct {
	id                 uint
	name               string
	slug               string
	active             bool
	currentPlan        subscription.Plan
	entitlementEnd     *time.Time
	isTemporaryUpgrade bool
	priorPlan          *subscription.Plan
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewTenant creates a tenant on the default plan with no entitlement yet.
func NewTenant(name, slug string) (*Tenant, error) {
	if name == "" {
		return nil, ErrTenantNameRequired
	}
	if slug == "" {
		return nil, fmt.Errorf("tenant slug is required")
	}

	now := time.Now().UTC()
	return &Tenant{
		name:        name,
		slug:        slug,
		active:      true,
		currentPlan: subscription.DefaultPlan,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructTenant reconstructs a tenant from persistence.
func ReconstructTenant(
	id uint,
	name, slug string,
	active bool,
	currentPlan subscription.Plan,
	entitlementEnd *time.Time,
	isTemporaryUpgrade bool,
	priorPlan *subscription.Plan,
	version int,
	createdAt, updatedAt time.Time,
) (*Tenant, error) {
	if id == 0 {
		return nil, fmt.Errorf("tenant ID cannot be zero")
	}
	if name == "" {
		return nil, ErrTenantNameRequired
	}
	if !currentPlan.IsValid() {
		return nil, fmt.Errorf("%w: %s", subscription.ErrInvalidPlan, currentPlan)
	}
	if isTemporaryUpgrade && priorPlan == nil {
		return nil, fmt.Errorf("%w: temporary upgrade flag set without prior plan", subscription.ErrInvariantViolation)
	}
	if priorPlan != nil && !priorPlan.IsValid() {
		return nil, fmt.Errorf("%w: prior plan %s", subscription.ErrInvalidPlan, *priorPlan)
	}

	return &Tenant{
		id:                 id,
		name:               name,
		slug:               slug,
		active:             active,
		currentPlan:        currentPlan,
		entitlementEnd:     entitlementEnd,
		isTemporaryUpgrade: isTemporaryUpgrade,
		priorPlan:          priorPlan,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (t *Tenant) ID() uint                            { return t.id }
func (t *Tenant) Name() string                        { return t.name }
func (t *Tenant) Slug() string                        { return t.slug }
func (t *Tenant) IsActive() bool                      { return t.active }
func (t *Tenant) CurrentPlan() subscription.Plan      { return t.currentPlan }
func (t *Tenant) EntitlementEnd() *time.Time          { return t.entitlementEnd }
func (t *Tenant) IsTemporaryUpgrade() bool            { return t.isTemporaryUpgrade }
func (t *Tenant) PriorPlan() *subscription.Plan       { return t.priorPlan }
func (t *Tenant) Version() int                        { return t.version }
func (t *Tenant) CreatedAt() time.Time                { return t.createdAt }
func (t *Tenant) UpdatedAt() time.Time                { return t.updatedAt }

// SetID sets the tenant ID (only for persistence layer use).
func (t *Tenant) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("tenant ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("tenant ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Tenant) Activate() {
	if t.active {
		return
	}
	t.active = true
	t.touch()
}

func (t *Tenant) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.touch()
}

// HasEntitlementAt reports whether the current grant covers the instant.
func (t *Tenant) HasEntitlementAt(now time.Time) bool {
	return t.entitlementEnd != nil && t.entitlementEnd.After(now)
}

// ApplyGrant installs a fresh plan grant, clearing any temporary upgrade
// bookkeeping. Used by administrative grant and extend operations.
func (t *Tenant) ApplyGrant(plan subscription.Plan, end time.Time) error {
	if !plan.IsValid() {
		return fmt.Errorf("%w: %s", subscription.ErrInvalidPlan, plan)
	}
	t.currentPlan = plan
	t.entitlementEnd = &end
	t.isTemporaryUpgrade = false
	t.priorPlan = nil
	t.touch()
	return nil
}

// BeginTemporaryUpgrade elevates the tenant to a higher plan until end,
// remembering the plan to revert to.
func (t *Tenant) BeginTemporaryUpgrade(plan subscription.Plan, end time.Time) error {
	if t.isTemporaryUpgrade {
		return ErrAlreadyTemporaryUpgrade
	}
	if !plan.IsUpgradeOf(t.currentPlan) {
		return fmt.Errorf("%w: %s does not outrank %s", ErrNotAnUpgrade, plan, t.currentPlan)
	}

	prior := t.currentPlan
	t.priorPlan = &prior
	t.currentPlan = plan
	t.entitlementEnd = &end
	t.isTemporaryUpgrade = true
	t.touch()
	return nil
}

// ApplyRevert restores the prior plan after a temporary upgrade lapsed,
// keeping the prior grant's absolute end date.
func (t *Tenant) ApplyRevert(plan subscription.Plan, end time.Time) error {
	if !t.isTemporaryUpgrade {
		return ErrNotTemporaryUpgrade
	}
	t.currentPlan = plan
	t.entitlementEnd = &end
	t.isTemporaryUpgrade = false
	t.priorPlan = nil
	t.touch()
	return nil
}

// ApplyDowngrade drops the tenant to the default plan with no residual
// entitlement. The lapsed entitlement end is preserved as-is so the guard
// still sees an expired grant rather than a missing one.
func (t *Tenant) ApplyDowngrade() {
	t.currentPlan = subscription.DefaultPlan
	t.isTemporaryUpgrade = false
	t.priorPlan = nil
	t.touch()
}

func (t *Tenant) touch() {
	t.updatedAt = time.Now().UTC()
	t.version++
}
