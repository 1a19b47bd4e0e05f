package addon

import (
	"fmt"
	"time"
)

// Type identifies an optional capability a tenant can be granted on top of
// its plan.
type Type string

const (
	TypeExtraOutlets   Type = "extra_outlets"
	TypeExtraStaff     Type = "extra_staff"
	TypeKitchenDisplay Type = "kitchen_display"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeExtraOutlets, TypeExtraStaff, TypeKitchenDisplay:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Resource returns the numeric resource this addon raises the limit for, or
// empty when the addon is a pure feature toggle.
func (t Type) Resource() Resource {
	switch t {
	case TypeExtraOutlets:
		return ResourceOutlets
	case TypeExtraStaff:
		return ResourceStaffUsers
	}
	return ""
}

// Resource is a countable tenant resource subject to numeric limits.
type Resource string

const (
	ResourceOutlets    Resource = "outlets"
	ResourceStaffUsers Resource = "staff_users"
)

func (r Resource) IsValid() bool {
	return r == ResourceOutlets || r == ResourceStaffUsers
}

func (r Resource) String() string {
	return string(r)
}

// TypeForResource returns the addon type that can raise the limit for the
// given resource.
func TypeForResource(r Resource) (Type, bool) {
	switch r {
	case ResourceOutlets:
		return TypeExtraOutlets, true
	case ResourceStaffUsers:
		return TypeExtraStaff, true
	}
	return "", false
}

// Status is the lifecycle state of an addon grant.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Grant is a tenant-scoped optional capability: a feature toggle or a raised
// numeric limit, optionally time-boxed. A nil end date means the grant holds
// until explicitly removed; a nil limit means unlimited.
type Grant struct {
	id        uint
	tenantID  uint
	addonType Type
	status    Status
	limit     *int
	endDate   *time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewGrant creates an active addon grant.
func NewGrant(tenantID uint, addonType Type, limit *int, endDate *time.Time) (*Grant, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !addonType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddonType, addonType)
	}
	if limit != nil && *limit < 0 {
		return nil, fmt.Errorf("addon limit cannot be negative")
	}

	now := time.Now().UTC()
	return &Grant{
		tenantID:  tenantID,
		addonType: addonType,
		status:    StatusActive,
		limit:     limit,
		endDate:   endDate,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructGrant reconstructs a grant from persistence.
func ReconstructGrant(
	id, tenantID uint,
	addonType Type,
	status Status,
	limit *int,
	endDate *time.Time,
	createdAt, updatedAt time.Time,
) (*Grant, error) {
	if id == 0 {
		return nil, fmt.Errorf("addon grant ID cannot be zero")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if !addonType.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddonType, addonType)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid addon status: %s", status)
	}

	return &Grant{
		id:        id,
		tenantID:  tenantID,
		addonType: addonType,
		status:    status,
		limit:     limit,
		endDate:   endDate,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (g *Grant) ID() uint             { return g.id }
func (g *Grant) TenantID() uint       { return g.tenantID }
func (g *Grant) AddonType() Type      { return g.addonType }
func (g *Grant) Status() Status       { return g.status }
func (g *Grant) Limit() *int          { return g.limit }
func (g *Grant) EndDate() *time.Time  { return g.endDate }
func (g *Grant) CreatedAt() time.Time { return g.createdAt }
func (g *Grant) UpdatedAt() time.Time { return g.updatedAt }

// SetID sets the grant ID (only for persistence layer use).
func (g *Grant) SetID(id uint) error {
	if g.id != 0 {
		return fmt.Errorf("addon grant ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("addon grant ID cannot be zero")
	}
	g.id = id
	return nil
}

// IsActiveAt reports whether the grant applies at the given instant.
func (g *Grant) IsActiveAt(now time.Time) bool {
	if g.status != StatusActive {
		return false
	}
	return g.endDate == nil || g.endDate.After(now)
}

func (g *Grant) Deactivate() {
	if g.status == StatusInactive {
		return
	}
	g.status = StatusInactive
	g.updatedAt = time.Now().UTC()
}
