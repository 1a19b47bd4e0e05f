package outlet

import (
	"fmt"
	"time"
)

// Outlet is a physical point of sale belonging to a tenant. The number of
// active outlets is capped by the tenant's plan or an extra-outlets addon.
type Outlet struct {
	id        uint
	tenantID  uint
	name      string
	address   string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewOutlet(tenantID uint, name, address string) (*Outlet, error) {
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("outlet name is required")
	}

	now := time.Now().UTC()
	return &Outlet{
		tenantID:  tenantID,
		name:      name,
		address:   address,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOutlet reconstructs an outlet from persistence.
func ReconstructOutlet(id, tenantID uint, name, address string, active bool, createdAt, updatedAt time.Time) (*Outlet, error) {
	if id == 0 {
		return nil, fmt.Errorf("outlet ID cannot be zero")
	}
	if tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}

	return &Outlet{
		id:        id,
		tenantID:  tenantID,
		name:      name,
		address:   address,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (o *Outlet) ID() uint             { return o.id }
func (o *Outlet) TenantID() uint       { return o.tenantID }
func (o *Outlet) Name() string         { return o.name }
func (o *Outlet) Address() string      { return o.address }
func (o *Outlet) IsActive() bool       { return o.active }
func (o *Outlet) CreatedAt() time.Time { return o.createdAt }
func (o *Outlet) UpdatedAt() time.Time { return o.updatedAt }

// SetID sets the outlet ID (only for persistence layer use).
func (o *Outlet) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("outlet ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("outlet ID cannot be zero")
	}
	o.id = id
	return nil
}

func (o *Outlet) Activate() {
	if o.active {
		return
	}
	o.active = true
	o.updatedAt = time.Now().UTC()
}

func (o *Outlet) Deactivate() {
	if !o.active {
		return
	}
	o.active = false
	o.updatedAt = time.Now().UTC()
}
