package mappers

import (
	"github.com/sentra-pos/sentra/internal/domain/outlet"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
)

type OutletMapper interface {
	ToEntity(model *models.OutletModel) (*outlet.Outlet, error)
	ToModel(entity *outlet.Outlet) *models.OutletModel
	ToEntities(models []*models.OutletModel) ([]*outlet.Outlet, error)
}

type OutletMapperImpl struct{}

func NewOutletMapper() OutletMapper {
	return &OutletMapperImpl{}
}

func (m *OutletMapperImpl) ToEntity(model *models.OutletModel) (*outlet.Outlet, error) {
	if model == nil {
		return nil, nil
	}

	return outlet.ReconstructOutlet(
		model.ID,
		model.TenantID,
		model.Name,
		model.Address,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *OutletMapperImpl) ToModel(entity *outlet.Outlet) *models.OutletModel {
	if entity == nil {
		return nil
	}

	return &models.OutletModel{
		ID:        entity.ID(),
		TenantID:  entity.TenantID(),
		Name:      entity.Name(),
		Address:   entity.Address(),
		Active:    entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}

func (m *OutletMapperImpl) ToEntities(outletModels []*models.OutletModel) ([]*outlet.Outlet, error) {
	entities := make([]*outlet.Outlet, 0, len(outletModels))
	for _, model := range outletModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
