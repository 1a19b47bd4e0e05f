package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// SubscriptionHistoryRepository implements subscription.HistoryRepository on GORM.
type SubscriptionHistoryRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionHistoryMapper
	logger logger.Interface
}

func NewSubscriptionHistoryRepository(gdb *gorm.DB, logger logger.Interface) subscription.HistoryRepository {
	return &SubscriptionHistoryRepository{
		db:     gdb,
		mapper: mappers.NewSubscriptionHistoryMapper(),
		logger: logger,
	}
}

func (r *SubscriptionHistoryRepository) Create(ctx context.Context, entry *subscription.HistoryEntry) error {
	model := r.mapper.ToModel(entry)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create history entry", "error", err, "tenant_id", model.TenantID)
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	if err := entry.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set history entry ID: %w", err)
	}

	return nil
}

func (r *SubscriptionHistoryRepository) GetByID(ctx context.Context, id uint) (*subscription.HistoryEntry, error) {
	var model models.SubscriptionHistoryModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get history entry", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionHistoryRepository) GetLatestUnreverted(ctx context.Context, tenantID uint, plan subscription.Plan) (*subscription.HistoryEntry, error) {
	var model models.SubscriptionHistoryModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ? AND plan = ? AND is_temporary_upgrade = ? AND reverted = ?",
			tenantID, plan.String(), false, false).
		Order("created_at desc, id desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrHistoryNotFound
		}
		r.logger.Errorw("failed to get latest unreverted history entry", "error", err, "tenant_id", tenantID, "plan", plan)
		return nil, fmt.Errorf("failed to get latest unreverted history entry: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionHistoryRepository) MarkReverted(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionHistoryModel{}).
		Where("id = ? AND reverted = ?", id, false).
		Update("reverted", true)
	if result.Error != nil {
		r.logger.Errorw("failed to mark history entry reverted", "error", result.Error, "id", id)
		return fmt.Errorf("failed to mark history entry reverted: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Entry was missing or a concurrent revert consumed it first.
		return subscription.ErrHistoryAlreadyReverted
	}

	return nil
}

func (r *SubscriptionHistoryRepository) ListByTenantID(ctx context.Context, tenantID uint) ([]*subscription.HistoryEntry, error) {
	var historyModels []*models.SubscriptionHistoryModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("created_at desc, id desc").
		Find(&historyModels).Error
	if err != nil {
		r.logger.Errorw("failed to list history entries", "error", err, "tenant_id", tenantID)
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}

	return r.mapper.ToEntities(historyModels)
}
