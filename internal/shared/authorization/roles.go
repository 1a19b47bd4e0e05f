package authorization

// UserRole identifies the actor role carried by every authenticated request.
type UserRole string

const (
	RoleSuperAdmin  UserRole = "super_admin"
	RoleAdminTenant UserRole = "admin_tenant"
	RoleSupervisor  UserRole = "supervisor"
	RoleCashier     UserRole = "cashier"
	RoleKitchen     UserRole = "kitchen"
)

// CascadeRoles are the staff roles whose accounts follow the tenant's
// entitlement automatically. Admin accounts are never auto-toggled.
var CascadeRoles = []UserRole{RoleCashier, RoleKitchen, RoleSupervisor}

func (r UserRole) String() string {
	return string(r)
}

// IsPrivileged reports whether the role bypasses entitlement blocking so it
// can always manage its own (possibly expired) tenant.
func (r UserRole) IsPrivileged() bool {
	return r == RoleSuperAdmin || r == RoleAdminTenant
}

func (r UserRole) IsStaff() bool {
	return r == RoleSupervisor || r == RoleCashier || r == RoleKitchen
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdminTenant, RoleSupervisor, RoleCashier, RoleKitchen:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCashier
}
