package models

import (
	"time"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// OutletModel is the persistence model for points of sale.
type OutletModel struct {
	ID        uint   `gorm:"primarykey"`
	TenantID  uint   `gorm:"not null;index:idx_outlet_tenant"`
	Name      string `gorm:"not null;size:255"`
	Address   string `gorm:"size:500"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OutletModel) TableName() string {
	return constants.TableOutlets
}
