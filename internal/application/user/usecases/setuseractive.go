package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/entitlement"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type SetUserActiveCommand struct {
	TenantID uint
	UserID   uint
	Active   bool
	Actor    entitlement.Actor
}

// SetUserActiveUseCase is the manual user-status edit: a tenant admin
// explicitly toggling one account by hand. The actor's manual-edit flag
// keeps any reconciliation triggered by the same request from cascading
// over the admin's decision.
type SetUserActiveUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewSetUserActiveUseCase(userRepo user.Repository, logger logger.Interface) *SetUserActiveUseCase {
	return &SetUserActiveUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *SetUserActiveUseCase) Execute(ctx context.Context, cmd SetUserActiveCommand) error {
	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return user.ErrUserNotFound
	}
	if u.TenantID() != cmd.TenantID {
		return user.ErrUserNotFound
	}

	if cmd.Active {
		u.Activate()
	} else {
		u.Deactivate()
	}

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user active flag",
			"error", err, "user_id", cmd.UserID, "active", cmd.Active)
		return fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("user active flag changed",
		"user_id", cmd.UserID,
		"tenant_id", cmd.TenantID,
		"active", cmd.Active,
		"actor_user_id", cmd.Actor.UserID,
		"manual_edit", cmd.Actor.ManualUserEdit,
	)
	return nil
}
