package database

import (
	"fmt"

	"github.com/yukikurage/freelance-tracker-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates the documents table used by the SQL document backend.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.DocumentRow{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
