package database

import (
	"gorm.io/gorm"

	"github.com/devconnect/backend/internal/models"
)

// Migrate creates or updates the schema for every model the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Experience{},
		&models.Education{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
}
