package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/mappers"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/db"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// TenantRepository implements the tenant repository interface on GORM.
type TenantRepository struct {
	db     *gorm.DB
	mapper mappers.TenantMapper
	logger logger.Interface
}

func NewTenantRepository(gdb *gorm.DB, logger logger.Interface) tenant.Repository {
	return &TenantRepository{
		db:     gdb,
		mapper: mappers.NewTenantMapper(),
		logger: logger,
	}
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	model := r.mapper.ToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create tenant", "error", err, "slug", model.Slug)
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set tenant ID: %w", err)
	}

	r.logger.Infow("tenant created", "id", model.ID, "slug", model.Slug)
	return nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id uint) (*tenant.Tenant, error) {
	var model models.TenantModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get tenant by ID", "error", err, "id", id)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *TenantRepository) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var model models.TenantModel

	if err := db.GetTxFromContext(ctx, r.db).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get tenant by slug", "error", err, "slug", slug)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *TenantRepository) Update(ctx context.Context, t *tenant.Tenant) error {
	model := r.mapper.ToModel(t)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update tenant", "error", err, "id", model.ID)
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	return nil
}

func (r *TenantRepository) List(ctx context.Context, page, pageSize int) ([]*tenant.Tenant, int64, error) {
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.TenantModel{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tenants", "error", err)
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	var tenantModels []*models.TenantModel
	offset := (page - 1) * pageSize
	if err := conn.Order("id desc").Offset(offset).Limit(pageSize).Find(&tenantModels).Error; err != nil {
		r.logger.Errorw("failed to list tenants", "error", err)
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	entities, err := r.mapper.ToEntities(tenantModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *TenantRepository) UpdateEntitlement(ctx context.Context, tenantID uint, update tenant.EntitlementUpdate) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TenantModel{}).
		Where("id = ?", tenantID).
		Updates(entitlementColumns(update))
	if result.Error != nil {
		r.logger.Errorw("failed to update tenant entitlement", "error", result.Error, "tenant_id", tenantID)
		return fmt.Errorf("failed to update entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tenant.ErrTenantNotFound
	}

	return nil
}

func (r *TenantRepository) UpdateEntitlementIfTemporary(ctx context.Context, tenantID uint, update tenant.EntitlementUpdate) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TenantModel{}).
		Where("id = ? AND is_temporary_upgrade = ?", tenantID, true).
		Updates(entitlementColumns(update))
	if result.Error != nil {
		r.logger.Errorw("failed to update tenant entitlement", "error", result.Error, "tenant_id", tenantID)
		return fmt.Errorf("failed to update entitlement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Another writer already cleared the flag.
		return subscription.ErrLedgerConflict
	}

	return nil
}

func (r *TenantRepository) SetActive(ctx context.Context, tenantID uint, active bool) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TenantModel{}).
		Where("id = ?", tenantID).
		Update("active", active)
	if result.Error != nil {
		r.logger.Errorw("failed to set tenant active flag", "error", result.Error, "tenant_id", tenantID)
		return fmt.Errorf("failed to set tenant active flag: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return tenant.ErrTenantNotFound
	}

	return nil
}

// entitlementColumns maps the update to explicit column assignments so that
// nil pointers clear their columns instead of being skipped.
func entitlementColumns(update tenant.EntitlementUpdate) map[string]interface{} {
	var priorPlan *string
	if update.PriorPlan != nil {
		s := update.PriorPlan.String()
		priorPlan = &s
	}

	return map[string]interface{}{
		"current_plan":         update.Plan.String(),
		"entitlement_end":      update.EntitlementEnd,
		"is_temporary_upgrade": update.IsTemporaryUpgrade,
		"prior_plan":           priorPlan,
		"version":              gorm.Expr("version + 1"),
	}
}
