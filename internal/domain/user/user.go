package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/sentra-pos/sentra/internal/shared/authorization"
)

// User is an account under a tenant. Staff accounts (cashier, kitchen,
// supervisor) follow the tenant's entitlement through the activation
// cascade; admin accounts are only ever toggled manually.
type User struct {
	id           uint
	tenantID     uint
	name         string
	email        string
	passwordHash string
	role         authorization.UserRole
	active       bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active user account.
func NewUser(tenantID uint, name, email, passwordHash string, role authorization.UserRole) (*User, error) {
	if name == "" {
		return nil, fmt.Errorf("user name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if role != authorization.RoleSuperAdmin && tenantID == 0 {
		return nil, fmt.Errorf("tenant ID is required")
	}

	now := time.Now().UTC()
	return &User{
		tenantID:     tenantID,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	id, tenantID uint,
	name, email, passwordHash string,
	role authorization.UserRole,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	return &User{
		id:           id,
		tenantID:     tenantID,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) TenantID() uint               { return u.tenantID }
func (u *User) Name() string                 { return u.name }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool               { return u.active }
func (u *User) Version() int                 { return u.version }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

// SetID sets the user ID (only for persistence layer use).
func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Activate() {
	if u.active {
		return
	}
	u.active = true
	u.touch()
}

func (u *User) Deactivate() {
	if !u.active {
		return
	}
	u.active = false
	u.touch()
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
	u.version++
}
