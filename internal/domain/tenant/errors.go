package tenant

import "errors"

var (
	ErrTenantNotFound          = errors.New("tenant not found")
	ErrTenantInactive          = errors.New("tenant inactive")
	ErrTenantNameRequired      = errors.New("tenant name is required")
	ErrTenantSlugExists        = errors.New("tenant slug already exists")
	ErrAlreadyTemporaryUpgrade = errors.New("tenant already has a temporary upgrade in effect")
	ErrNotTemporaryUpgrade     = errors.New("tenant has no temporary upgrade in effect")
	ErrNotAnUpgrade            = errors.New("plan is not an upgrade")
)
