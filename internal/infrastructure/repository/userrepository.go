package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/user"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/authorization"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// UserRepository implements the user repository interface on GORM.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(gdb *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     gdb,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "error", err, "email", model.Email)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "tenant_id", model.TenantID, "role", model.Role)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) ListByTenantID(ctx context.Context, tenantID uint) ([]*user.User, error) {
	var userModels []*models.UserModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("id asc").
		Find(&userModels).Error
	if err != nil {
		r.logger.Errorw("failed to list users", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return r.mapper.ToEntities(userModels)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update user", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepository) SetActiveByRoles(ctx context.Context, tenantID uint, roles []authorization.UserRole, active bool) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}

	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, string(role))
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("tenant_id = ? AND role IN ?", tenantID, roleNames).
		Where("active <> ?", active).
		Updates(map[string]interface{}{
			"active":  active,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to bulk toggle users", "error", result.Error, "tenant_id", tenantID, "active", active)
		return 0, fmt.Errorf("failed to bulk toggle users: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *UserRepository) CountStaffByTenantID(ctx context.Context, tenantID uint) (int64, error) {
	staffRoles := make([]string, 0, len(authorization.CascadeRoles))
	for _, role := range authorization.CascadeRoles {
		staffRoles = append(staffRoles, string(role))
	}

	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("tenant_id = ? AND role IN ?", tenantID, staffRoles).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count staff users", "error", err, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to count staff users: %w", err)
	}

	return count, nil
}

func (r *UserRepository) DeactivateStaffBeyond(ctx context.Context, tenantID uint, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	staffRoles := make([]string, 0, len(authorization.CascadeRoles))
	for _, role := range authorization.CascadeRoles {
		staffRoles = append(staffRoles, string(role))
	}

	conn := db.GetTxFromContext(ctx, r.db)

	// Newest hires are deactivated first so long-standing staff keep their
	// access after a downgrade. Admin roles are excluded by construction.
	var ids []uint
	err := conn.Model(&models.UserModel{}).
		Where("tenant_id = ? AND role IN ? AND active = ?", tenantID, staffRoles, true).
		Order("id desc").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list active staff for downgrade", "error", err, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to list active staff: %w", err)
	}

	if len(ids) <= keep {
		return 0, nil
	}
	excess := ids[:len(ids)-keep]

	result := conn.Model(&models.UserModel{}).
		Where("id IN ?", excess).
		Updates(map[string]interface{}{
			"active":  false,
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to deactivate excess staff", "error", result.Error, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to deactivate excess staff: %w", result.Error)
	}

	r.logger.Infow("deactivated excess staff", "tenant_id", tenantID, "kept", keep, "deactivated", result.RowsAffected)
	return result.RowsAffected, nil
}
