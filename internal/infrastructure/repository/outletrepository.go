package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// OutletRepository implements the outlet repository interface on GORM.
type OutletRepository struct {
	db     *gorm.DB
	mapper mappers.OutletMapper
	logger logger.Interface
}

func NewOutletRepository(gdb *gorm.DB, logger logger.Interface) outlet.Repository {
	return &OutletRepository{
		db:     gdb,
		mapper: mappers.NewOutletMapper(),
		logger: logger,
	}
}

func (r *OutletRepository) Create(ctx context.Context, o *outlet.Outlet) error {
	model := r.mapper.ToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create outlet", "error", err, "tenant_id", model.TenantID)
		return fmt.Errorf("failed to create outlet: %w", err)
	}

	if err := o.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set outlet ID: %w", err)
	}

	r.logger.Infow("outlet created", "id", model.ID, "tenant_id", model.TenantID, "name", model.Name)
	return nil
}

func (r *OutletRepository) GetByID(ctx context.Context, id uint) (*outlet.Outlet, error) {
	var model models.OutletModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get outlet", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get outlet: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *OutletRepository) ListByTenantID(ctx context.Context, tenantID uint) ([]*outlet.Outlet, error) {
	var outletModels []*models.OutletModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("id asc").
		Find(&outletModels).Error
	if err != nil {
		r.logger.Errorw("failed to list outlets", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list outlets: %w", err)
	}

	return r.mapper.ToEntities(outletModels)
}

func (r *OutletRepository) Update(ctx context.Context, o *outlet.Outlet) error {
	model := r.mapper.ToModel(o)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update outlet", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update outlet: %w", err)
	}

	return nil
}

func (r *OutletRepository) CountActiveByTenantID(ctx context.Context, tenantID uint) (int64, error) {
	var count int64

	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.OutletModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count active outlets", "error", err, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to count active outlets: %w", err)
	}

	return count, nil
}

func (r *OutletRepository) DeactivateBeyond(ctx context.Context, tenantID uint, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}

	conn := db.GetTxFromContext(ctx, r.db)

	// Newest outlets are deactivated first so the tenant's original
	// locations survive a downgrade.
	var ids []uint
	err := conn.Model(&models.OutletModel{}).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("id desc").
		Pluck("id", &ids).Error
	if err != nil {
		r.logger.Errorw("failed to list active outlets for downgrade", "error", err, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to list active outlets: %w", err)
	}

	if len(ids) <= keep {
		return 0, nil
	}
	excess := ids[:len(ids)-keep]

	result := conn.Model(&models.OutletModel{}).
		Where("id IN ?", excess).
		Update("active", false)
	if result.Error != nil {
		r.logger.Errorw("failed to deactivate excess outlets", "error", result.Error, "tenant_id", tenantID)
		return 0, fmt.Errorf("failed to deactivate excess outlets: %w", result.Error)
	}

	r.logger.Infow("deactivated excess outlets", "tenant_id", tenantID, "kept", keep, "deactivated", result.RowsAffected)
	return result.RowsAffected, nil
}
