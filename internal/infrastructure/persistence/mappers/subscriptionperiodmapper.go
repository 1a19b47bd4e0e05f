package mappers

import (
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
)

type SubscriptionPeriodMapper interface {
	ToEntity(model *models.SubscriptionPeriodModel) (*subscription.Period, error)
	ToModel(entity *subscription.Period) *models.SubscriptionPeriodModel
	ToEntities(models []*models.SubscriptionPeriodModel) ([]*subscription.Period, error)
}

type SubscriptionPeriodMapperImpl struct{}

func NewSubscriptionPeriodMapper() SubscriptionPeriodMapper {
	return &SubscriptionPeriodMapperImpl{}
}

func (m *SubscriptionPeriodMapperImpl) ToEntity(model *models.SubscriptionPeriodModel) (*subscription.Period, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := subscription.ParsePlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("period %d: %w", model.ID, err)
	}

	var priorPlan *subscription.Plan
	if model.PriorPlan != nil {
		p, err := subscription.ParsePlan(*model.PriorPlan)
		if err != nil {
			return nil, fmt.Errorf("period %d prior plan: %w", model.ID, err)
		}
		priorPlan = &p
	}

	return subscription.ReconstructPeriod(
		model.ID,
		model.TenantID,
		plan,
		model.StartDate,
		model.EndDate,
		subscription.PeriodStatus(model.Status),
		model.IsTemporaryUpgrade,
		priorPlan,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *SubscriptionPeriodMapperImpl) ToModel(entity *subscription.Period) *models.SubscriptionPeriodModel {
	if entity == nil {
		return nil
	}

	var priorPlan *string
	if p := entity.PriorPlan(); p != nil {
		s := p.String()
		priorPlan = &s
	}

	return &models.SubscriptionPeriodModel{
		ID:                 entity.ID(),
		TenantID:           entity.TenantID(),
		Plan:               entity.Plan().String(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		Status:             string(entity.Status()),
		IsTemporaryUpgrade: entity.IsTemporaryUpgrade(),
		PriorPlan:          priorPlan,
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *SubscriptionPeriodMapperImpl) ToEntities(periodModels []*models.SubscriptionPeriodModel) ([]*subscription.Period, error) {
	entities := make([]*subscription.Period, 0, len(periodModels))
	for _, model := range periodModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
