package models

import (
	"time"

	"github.com/sentra-pos/sentra/internal/shared/constants"
)

// UserModel is the persistence model for accounts. TenantID is zero only
// for super admins, which belong to no tenant.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	TenantID     uint   `gorm:"not null;default:0;index:idx_user_tenant"`
	Name         string `gorm:"not null;size:255"`
	Email        string `gorm:"not null;size:255;uniqueIndex"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         string `gorm:"not null;size:20;index:idx_user_role"`
	Active       bool   `gorm:"not null;default:true"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
