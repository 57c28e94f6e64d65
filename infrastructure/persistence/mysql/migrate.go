package mysql

import (
	"fmt"

	"greencity/infrastructure/persistence/mysql/po"
	"greencity/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table this service maps.
func AutoMigrate(db *gorm.DB) error {
	models := po.Models()
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("tables", len(models)))
	return nil
}
