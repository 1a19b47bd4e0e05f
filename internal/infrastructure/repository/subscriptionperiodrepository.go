package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// SubscriptionPeriodRepository implements subscription.PeriodRepository on GORM.
type SubscriptionPeriodRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionPeriodMapper
	logger logger.Interface
}

func NewSubscriptionPeriodRepository(gdb *gorm.DB, logger logger.Interface) subscription.PeriodRepository {
	return &SubscriptionPeriodRepository{
		db:     gdb,
		mapper: mappers.NewSubscriptionPeriodMapper(),
		logger: logger,
	}
}

func (r *SubscriptionPeriodRepository) Create(ctx context.Context, period *subscription.Period) error {
	model := r.mapper.ToModel(period)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription period", "error", err, "tenant_id", model.TenantID)
		return fmt.Errorf("failed to create subscription period: %w", err)
	}

	if err := period.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set period ID: %w", err)
	}

	r.logger.Infow("subscription period created",
		"id", model.ID,
		"tenant_id", model.TenantID,
		"plan", model.Plan,
		"temporary", model.IsTemporaryUpgrade,
	)
	return nil
}

func (r *SubscriptionPeriodRepository) GetByID(ctx context.Context, id uint) (*subscription.Period, error) {
	var model models.SubscriptionPeriodModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription period", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get subscription period: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionPeriodRepository) GetActiveByTenantID(ctx context.Context, tenantID uint, now time.Time) ([]*subscription.Period, error) {
	var periodModels []*models.SubscriptionPeriodModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ? AND status = ? AND end_date > ?", tenantID, subscription.PeriodStatusActive, now).
		Order("end_date desc").
		Find(&periodModels).Error
	if err != nil {
		r.logger.Errorw("failed to list active subscription periods", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list active subscription periods: %w", err)
	}

	return r.mapper.ToEntities(periodModels)
}

func (r *SubscriptionPeriodRepository) GetActiveTemporaryByTenantID(ctx context.Context, tenantID uint) (*subscription.Period, error) {
	var model models.SubscriptionPeriodModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ? AND status = ? AND is_temporary_upgrade = ?", tenantID, subscription.PeriodStatusActive, true).
		Order("created_at desc, id desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrPeriodNotFound
		}
		r.logger.Errorw("failed to get temporary upgrade period", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to get temporary upgrade period: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionPeriodRepository) MarkExpired(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionPeriodModel{}).
		Where("id = ?", id).
		Update("status", subscription.PeriodStatusExpired)
	if result.Error != nil {
		r.logger.Errorw("failed to mark subscription period expired", "error", result.Error, "id", id)
		return fmt.Errorf("failed to mark subscription period expired: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrPeriodNotFound
	}

	return nil
}

func (r *SubscriptionPeriodRepository) ListByTenantID(ctx context.Context, tenantID uint) ([]*subscription.Period, error) {
	var periodModels []*models.SubscriptionPeriodModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc, id desc").
		Find(&periodModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscription periods", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list subscription periods: %w", err)
	}

	return r.mapper.ToEntities(periodModels)
}
