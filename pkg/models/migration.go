package models

import (
	"gorm.io/gorm"
)

// Database migration function
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Account{},
		&CaretakerRelation{},
		&Medication{},
		&ScheduledDose{},
		&TimingPreference{},
		&Event{},
	)
}

func CreateIndexes(db *gorm.DB) error {
	// Composite indexes for common queries
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_doses_medication_scheduled ON scheduled_doses(medication_id, scheduled_at)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_doses_taken_scheduled ON scheduled_doses(taken, scheduled_at)").Error; err != nil {
		return err
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_account_created_at ON events(account_id, created_at DESC)").Error; err != nil {
		return err
	}

	return nil
}
