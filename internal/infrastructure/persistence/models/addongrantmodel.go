package models

import (
	"time"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// AddonGrantModel is the persistence model for tenant addon grants.
// A null Limit means unlimited; a null EndDate means perpetual.
type AddonGrantModel struct {
	ID        uint   `gorm:"primarykey"`
	TenantID  uint   `gorm:"not null;index:idx_addon_tenant"`
	AddonType string `gorm:"not null;size:30;index:idx_addon_type"`
	Status    string `gorm:"not null;size:20"`
	Limit     *int
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AddonGrantModel) TableName() string {
	return constants.TableAddonGrants
}
