package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Sujith0604/Blog/internal/domain"
)

// MigrateDB creates or updates the tables for every domain model.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("setup: cannot migrate database with nil DB connection")
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Post{}); err != nil {
		return fmt.Errorf("setup: auto-migrate tables: %w", err)
	}
	return nil
}
