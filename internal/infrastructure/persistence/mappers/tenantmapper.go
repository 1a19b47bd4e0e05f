package mappers

import (
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/domain/tenant"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
)

type TenantMapper interface {
	ToEntity(model *models.TenantModel) (*tenant.Tenant, error)
	ToModel(entity *tenant.Tenant) *models.TenantModel
	ToEntities(models []*models.TenantModel) ([]*tenant.Tenant, error)
}

type TenantMapperImpl struct{}

func NewTenantMapper() TenantMapper {
	return &TenantMapperImpl{}
}

func (m *TenantMapperImpl) ToEntity(model *models.TenantModel) (*tenant.Tenant, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := subscription.ParsePlan(model.CurrentPlan)
	if err != nil {
		return nil, fmt.Errorf("tenant %d: %w", model.ID, err)
	}

	var priorPlan *subscription.Plan
	if model.PriorPlan != nil {
		p, err := subscription.ParsePlan(*model.PriorPlan)
		if err != nil {
			return nil, fmt.Errorf("tenant %d prior plan: %w", model.ID, err)
		}
		priorPlan = &p
	}

	return tenant.ReconstructTenant(
		model.ID,
		model.Name,
		model.Slug,
		model.Active,
		plan,
		model.EntitlementEnd,
		model.IsTemporaryUpgrade,
		priorPlan,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *TenantMapperImpl) ToModel(entity *tenant.Tenant) *models.TenantModel {
	if entity == nil {
		return nil
	}

	var priorPlan *string
	if p := entity.PriorPlan(); p != nil {
		s := p.String()
		priorPlan = &s
	}

	return &models.TenantModel{
		ID:                 entity.ID(),
		Name:               entity.Name(),
		Slug:               entity.Slug(),
		Active:             entity.IsActive(),
		CurrentPlan:        entity.CurrentPlan().String(),
		EntitlementEnd:     entity.EntitlementEnd(),
		IsTemporaryUpgrade: entity.IsTemporaryUpgrade(),
		PriorPlan:          priorPlan,
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *TenantMapperImpl) ToEntities(tenantModels []*models.TenantModel) ([]*tenant.Tenant, error) {
	entities := make([]*tenant.Tenant, 0, len(tenantModels))
	for _, model := range tenantModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
