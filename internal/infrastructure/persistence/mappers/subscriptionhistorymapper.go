package mappers

import (
	"fmt"

	"github.com/sentra-pos/sentra/internal/domain/subscription"
	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
)

type SubscriptionHistoryMapper interface {
	ToEntity(model *models.SubscriptionHistoryModel) (*subscription.HistoryEntry, error)
	ToModel(entity *subscription.HistoryEntry) *models.SubscriptionHistoryModel
	ToEntities(models []*models.SubscriptionHistoryModel) ([]*subscription.HistoryEntry, error)
}

type SubscriptionHistoryMapperImpl struct{}

func NewSubscriptionHistoryMapper() SubscriptionHistoryMapper {
	return &SubscriptionHistoryMapperImpl{}
}

func (m *SubscriptionHistoryMapperImpl) ToEntity(model *models.SubscriptionHistoryModel) (*subscription.HistoryEntry, error) {
	if model == nil {
		return nil, nil
	}

	plan, err := subscription.ParsePlan(model.Plan)
	if err != nil {
		return nil, fmt.Errorf("history entry %d: %w", model.ID, err)
	}

	return subscription.ReconstructHistoryEntry(
		model.ID,
		model.PeriodID,
		model.TenantID,
		plan,
		model.StartDate,
		model.EndDate,
		model.DurationDays,
		model.IsTemporaryUpgrade,
		model.Reverted,
		model.CreatedAt,
	)
}

func (m *SubscriptionHistoryMapperImpl) ToModel(entity *subscription.HistoryEntry) *models.SubscriptionHistoryModel {
	if entity == nil {
		return nil
	}

	return &models.SubscriptionHistoryModel{
		ID:                 entity.ID(),
		PeriodID:           entity.PeriodID(),
		TenantID:           entity.TenantID(),
		Plan:               entity.Plan().String(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		DurationDays:       entity.DurationDays(),
		IsTemporaryUpgrade: entity.IsTemporaryUpgrade(),
		Reverted:           entity.Reverted(),
		CreatedAt:          entity.CreatedAt(),
	}
}

func (m *SubscriptionHistoryMapperImpl) ToEntities(historyModels []*models.SubscriptionHistoryModel) ([]*subscription.HistoryEntry, error) {
	entities := make([]*subscription.HistoryEntry, 0, len(historyModels))
	for _, model := range historyModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
