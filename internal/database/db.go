package database

import (
	"fmt"
	"log"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection described by dsn. Schema changes are
// left to Migrate.
func Connect(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn))
}

// Open connects through any gorm dialector. Driver errors such as unique
// violations are translated to gorm's sentinels.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established")
	return db, nil
}

// Migrate creates or updates the users and jobs tables.
func Migrate(db *gorm.DB) error {
	log.Println("Running Migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Job{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
