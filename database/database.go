package database

import (
	"fmt"
	"log"

	"e-guarding-cctv/console/config"
	"e-guarding-cctv/console/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the local UI-state store. All platform rows live behind
// the gateway; this sqlite file only persists dashboard preferences.
func Initialize(cfg config.StateConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	if err := db.AutoMigrate(&models.UIState{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}

	if err := seedDefaults(db); err != nil {
		log.Printf("Warning: Failed to seed UI state defaults: %v", err)
	}

	log.Println("State store initialized successfully")
	return db, nil
}

func seedDefaults(db *gorm.DB) error {
	defaults := map[string]string{
		models.StateSidebarMinimized: "false",
		models.StateActiveView:       "dashboard",
	}
	for key, value := range defaults {
		var count int64
		db.Model(&models.UIState{}).Where("key = ?", key).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&models.UIState{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}
	return nil
}
