package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// AddonGrantRepository implements the addon repository interface on GORM.
type AddonGrantRepository struct {
	db     *gorm.DB
	mapper mappers.AddonGrantMapper
	logger logger.Interface
}

func NewAddonGrantRepository(gdb *gorm.DB, logger logger.Interface) addon.Repository {
	return &AddonGrantRepository{
		db:     gdb,
		mapper: mappers.NewAddonGrantMapper(),
		logger: logger,
	}
}

func (r *AddonGrantRepository) Create(ctx context.Context, g *addon.Grant) error {
	model := r.mapper.ToModel(g)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create addon grant", "error", err, "tenant_id", model.TenantID)
		return fmt.Errorf("failed to create addon grant: %w", err)
	}

	if err := g.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set addon grant ID: %w", err)
	}

	r.logger.Infow("addon grant created", "id", model.ID, "tenant_id", model.TenantID, "type", model.AddonType)
	return nil
}

func (r *AddonGrantRepository) GetByID(ctx context.Context, id uint) (*addon.Grant, error) {
	var model models.AddonGrantModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get addon grant", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get addon grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *AddonGrantRepository) GetActiveByTenantAndType(ctx context.Context, tenantID uint, addonType addon.Type, now time.Time) (*addon.Grant, error) {
	var model models.AddonGrantModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ? AND addon_type = ? AND status = ?", tenantID, addonType.String(), addon.StatusActive).
		Where("end_date IS NULL OR end_date > ?", now).
		Order("created_at desc, id desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, addon.ErrGrantNotFound
		}
		r.logger.Errorw("failed to get active addon grant", "error", err, "tenant_id", tenantID, "type", addonType)
		return nil, fmt.Errorf("failed to get active addon grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *AddonGrantRepository) ListByTenantID(ctx context.Context, tenantID uint) ([]*addon.Grant, error) {
	var grantModels []*models.AddonGrantModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc, id desc").
		Find(&grantModels).Error
	if err != nil {
		r.logger.Errorw("failed to list addon grants", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list addon grants: %w", err)
	}

	return r.mapper.ToEntities(grantModels)
}

func (r *AddonGrantRepository) Update(ctx context.Context, g *addon.Grant) error {
	model := r.mapper.ToModel(g)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update addon grant", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update addon grant: %w", err)
	}

	return nil
}

func (r *AddonGrantRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.AddonGrantModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete addon grant", "error", result.Error, "id", id)
		return fmt.Errorf("failed to delete addon grant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return addon.ErrGrantNotFound
	}

	return nil
}
