package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/application/user/dto"
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type CreateUserCommand struct {
	TenantID uint
	Name     string
	Email    string
	Password string
	Role     string
}

// CreateUserUseCase registers an account under a tenant. Staff roles occupy
// a seat against the staff_users limit, active or not, so the seat check
// runs before the account is created.
type CreateUserUseCase struct {
	userRepo user.Repository
	limits   LimitChecking
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	limits LimitChecking,
	hasher PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		limits:   limits,
		hasher:   hasher,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*dto.UserDTO, error) {
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %s", user.ErrInvalidRole, cmd.Role)
	}

	if role.IsStaff() {
		result, err := uc.limits.CheckLimit(ctx, cmd.TenantID, addon.ResourceStaffUsers)
		if err != nil {
			return nil, fmt.Errorf("failed to check staff limit: %w", err)
		}
		if !result.Allowed {
			return nil, fmt.Errorf("%w: staff_users at %d", entitlement.ErrLimitExceeded, result.Current)
		}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := user.NewUser(cmd.TenantID, cmd.Name, cmd.Email, hash, role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "error", err, "tenant_id", cmd.TenantID)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user created",
		"user_id", u.ID(),
		"tenant_id", cmd.TenantID,
		"role", role.String(),
	)
	return dto.ToDTO(u), nil
}
