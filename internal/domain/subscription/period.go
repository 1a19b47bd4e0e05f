package subscription

import (
	"fmt"
	"time"
)

// PeriodStatus is the lifecycle state of a subscription period.
type PeriodStatus string

const (
	PeriodStatusActive  PeriodStatus = "active"
	PeriodStatusExpired PeriodStatus = "expired"
)

func (s PeriodStatus) IsValid() bool {
	return s == PeriodStatusActive || s == PeriodStatusExpired
}

// Period is one granted plan interval for a tenant. Several periods may
// coexist for the same tenant, e.g. a base plan period with a temporary
// upgrade period layered on top; the effective plan is always computed by the
// reconciler, never read off the latest row.
type Period struct {
	id                 uint
	tenantID           uint
	plan               Plan
	startDate          time.Time
	endDate            time.Time
	status             PeriodStatus
	isTemporaryUpgrade bool
	priorPlan          *Plan
	createdAt          time.Time
	updatedAt          time.Time
}

// NewPeriod creates a regular (non-upgrade) plan period.
func NewPeriod(tenantID uint, plan Plan, startDate, endDate time.Time) (*Period, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	if !endDate.After(startDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}

	now := time.Now().UTC()
	return &Period{
		tenantID:  tenantID,
		plan:      plan,
		startDate: startDate,
		endDate:   endDate,
		status:    PeriodStatusActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewTemporaryUpgradePeriod creates a time-boxed upgrade layered on top of
// priorPlan. The upgrade plan must be a strictly higher tier.
func NewTemporaryUpgradePeriod(tenantID uint, plan, priorPlan Plan, startDate, endDate time.Time) (*Period, error) {
	p, err := NewPeriod(tenantID, plan, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if !priorPlan.IsValid() {
		return nil, fmt.Errorf("%w: prior plan %s", ErrInvalidPlan, priorPlan)
	}
	if !plan.IsUpgradeOf(priorPlan) {
		return nil, fmt.Errorf("temporary upgrade plan %s must outrank prior plan %s", plan, priorPlan)
	}

	p.isTemporaryUpgrade = true
	prior := priorPlan
	p.priorPlan = &prior
	return p, nil
}

// ReconstructPeriod reconstructs a period from persistence.
func ReconstructPeriod(
	id, tenantID uint,
	plan Plan,
	startDate, endDate time.Time,
	status PeriodStatus,
	isTemporaryUpgrade bool,
	priorPlan *Plan,
	createdAt, updatedAt time.Time,
) (*Period, error) {
	if id == 0 {
		return nil, fmt.Errorf("period ID cannot be zero")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !plan.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid period status: %s", status)
	}
	if isTemporaryUpgrade && priorPlan == nil {
		return nil, fmt.Errorf("%w: temporary upgrade period without prior plan", ErrInvariantViolation)
	}
	if priorPlan != nil && !priorPlan.IsValid() {
		return nil, fmt.Errorf("%w: prior plan %s", ErrInvalidPlan, *priorPlan)
	}

	return &Period{
		id:                 id,
		tenantID:           tenantID,
		plan:               plan,
		startDate:          startDate,
		endDate:            endDate,
		status:             status,
		isTemporaryUpgrade: isTemporaryUpgrade,
		priorPlan:          priorPlan,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (p *Period) ID() uint                 { return p.id }
func (p *Period) TenantID() uint           { return p.tenantID }
func (p *Period) Plan() Plan               { return p.plan }
func (p *Period) StartDate() time.Time     { return p.startDate }
func (p *Period) EndDate() time.Time       { return p.endDate }
func (p *Period) Status() PeriodStatus     { return p.status }
func (p *Period) IsTemporaryUpgrade() bool { return p.isTemporaryUpgrade }
func (p *Period) PriorPlan() *Plan         { return p.priorPlan }
func (p *Period) CreatedAt() time.Time     { return p.createdAt }
func (p *Period) UpdatedAt() time.Time     { return p.updatedAt }

// SetID sets the period ID (only for persistence layer use).
func (p *Period) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("period ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("period ID cannot be zero")
	}
	p.id = id
	return nil
}

// IsExpiredAt reports whether the granted interval has lapsed at the given
// instant, regardless of the stored status.
func (p *Period) IsExpiredAt(now time.Time) bool {
	return !p.endDate.After(now)
}

// Covers reports whether the period is active and its interval contains now.
func (p *Period) Covers(now time.Time) bool {
	return p.status == PeriodStatusActive && !p.IsExpiredAt(now) && !p.startDate.After(now)
}

// MarkExpired closes the period. Expired periods are immutable afterwards.
func (p *Period) MarkExpired() error {
	if p.status == PeriodStatusExpired {
		return nil
	}
	p.status = PeriodStatusExpired
	p.updatedAt = time.Now().UTC()
	return nil
}
