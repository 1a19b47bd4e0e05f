package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// TenantModel is the persistence model for tenants. The four entitlement
// columns are written only by the entitlement engine and the administrative
// grant operations.
type TenantModel struct {
	ID                 uint    `gorm:"primarykey"`
	Name               string  `gorm:"not null;size:255"`
	Slug               string  `gorm:"not null;size:100;uniqueIndex"`
	Active             bool    `gorm:"not null;default:true"`
	CurrentPlan        string  `gorm:"not null;size:20;default:'basic'"`
	EntitlementEnd     *time.Time
	IsTemporaryUpgrade bool    `gorm:"not null;default:false;index"`
	PriorPlan          *string `gorm:"size:20"`
	Metadata           datatypes.JSON
	Version            int `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (TenantModel) TableName() string {
	return constants.TableTenants
}
