package models

import (
	"time"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// SubscriptionPeriodModel is the persistence model for plan grant intervals.
type SubscriptionPeriodModel struct {
	ID                 uint      `gorm:"primarykey"`
	TenantID           uint      `gorm:"not null;index:idx_period_tenant"`
	Plan               string    `gorm:"not null;size:20"`
	StartDate          time.Time `gorm:"not null"`
	EndDate            time.Time `gorm:"not null;index:idx_period_end"`
	Status             string    `gorm:"not null;size:20;index:idx_period_status"`
	IsTemporaryUpgrade bool      `gorm:"not null;default:false"`
	PriorPlan          *string   `gorm:"size:20"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (SubscriptionPeriodModel) TableName() string {
	return constants.TableSubscriptionPeriods
}
