package usecases

import (
	"context"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/addon"
)

// PasswordHasher abstracts the credential hashing scheme.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// LimitChecking is what user creation needs from the limit checker: staff
// accounts occupy seats counted against the staff_users limit.
type LimitChecking interface {
	CheckLimit(ctx context.Context, tenantID uint, resource addon.Resource) (*entitlement.LimitResult, error)
}
