package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/sentra-pos/sentra/internal/infrastructure/persistence/models"
	"github.com/sentra-pos/sentra/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the model structs.
// Development only; production environments run versioned SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, migrateModels ...interface{}) error {
	if len(migrateModels) == 0 {
		migrateModels = AutoMigrateModels()
	}

	s.logger.Infow("starting auto-migration", "models", len(migrateModels))

	if err := db.AutoMigrate(migrateModels...); err != nil {
		s.logger.Errorw("auto-migration failed", "error", err)
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels lists every persistence model in schema order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.TenantModel{},
		&models.UserModel{},
		&models.OutletModel{},
		&models.SubscriptionPeriodModel{},
		&models.SubscriptionHistoryModel{},
		&models.AddonGrantModel{},
	}
}
