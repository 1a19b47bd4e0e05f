package usecases

import (
	"context"
	"fmt"

	"github.com/sentra-pos/sentra/internal/application/user/dto"
	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

type ListUsersQuery struct {
	TenantID uint
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) ([]*dto.UserDTO, error) {
	users, err := uc.userRepo.ListByTenantID(ctx, q.TenantID)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err, "tenant_id", q.TenantID)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return dto.ToDTOs(users), nil
}
