package mappers

import (
	"github.com/sentra-pos/sentra/internal/domain/addon"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
)

type AddonGrantMapper interface {
	ToEntity(model *models.AddonGrantModel) (*addon.Grant, error)
	ToModel(entity *addon.Grant) *models.AddonGrantModel
	ToEntities(models []*models.AddonGrantModel) ([]*addon.Grant, error)
}

type AddonGrantMapperImpl struct{}

func NewAddonGrantMapper() AddonGrantMapper {
	return &AddonGrantMapperImpl{}
}

func (m *AddonGrantMapperImpl) ToEntity(model *models.AddonGrantModel) (*addon.Grant, error) {
	if model == nil {
		return nil, nil
	}

	return addon.ReconstructGrant(
		model.ID,
		model.TenantID,
		addon.Type(model.AddonType),
		addon.Status(model.Status),
		model.Limit,
		model.EndDate,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *AddonGrantMapperImpl) ToModel(entity *addon.Grant) *models.AddonGrantModel {
	if entity == nil {
		return nil
	}

	return &models.AddonGrantModel{
		ID:        entity.ID(),
		TenantID:  entity.TenantID(),
		AddonType: entity.AddonType().String(),
		Status:    string(entity.Status()),
		Limit:     entity.Limit(),
		EndDate:   entity.EndDate(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *AddonGrantMapperImpl) ToEntities(grantModels []*models.AddonGrantModel) ([]*addon.Grant, error) {
	entities := make([]*addon.Grant, 0, len(grantModels))
	for _, model := range grantModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
