package models

import (
	"time"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// SubscriptionHistoryModel is the append-only audit trail of committed
// transitions. Rows are never updated except for the one-shot reverted flag.
type SubscriptionHistoryModel struct {
	ID                 uint      `gorm:"primarykey"`
	PeriodID           uint      `gorm:"not null;index:idx_history_period"`
	TenantID           uint      `gorm:"not null;index:idx_history_tenant"`
	Plan               string    `gorm:"not null;size:20"`
	StartDate          time.Time `gorm:"not null"`
	EndDate            time.Time `gorm:"not null"`
	DurationDays       int       `gorm:"not null"`
	IsTemporaryUpgrade bool      `gorm:"not null;default:false"`
	Reverted           bool      `gorm:"not null;default:false"`
	CreatedAt          time.Time `gorm:"index:idx_history_created"`
}

func (SubscriptionHistoryModel) TableName() string {
	return constants.TableSubscriptionHistory
}
