package database

import (
	"github.com/ogarridot/transfersol-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Booking{},
	)
	if err != nil {
		return err
	}

	// Columns added after the first deployments; keep them idempotent.
	if db.Migrator().HasTable(&models.Booking{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS is_modification boolean DEFAULT false",
			"ADD COLUMN IF NOT EXISTS original_booking_id text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS lang text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS driver_id text",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE bookings " + column).Error; err != nil {
				return err
			}
		}

		// Update constraint
		db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`)
		db.Exec(`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('pending', 'confirmed', 'cancelled', 'archived'))`)
	}

	return nil
}
