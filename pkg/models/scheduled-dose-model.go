package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// ScheduledDose is a single concrete dose generated from a medication's
// frequency and date range
type ScheduledDose struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	MedicationID string     `gorm:"not null;index" json:"medication_id"`
	Medication   Medication `gorm:"foreignKey:MedicationID" json:"medication,omitempty"`

	ScheduledAt time.Time  `gorm:"not null;index" json:"scheduled_at"`
	Taken       bool       `gorm:"default:false;index" json:"taken"`
	TakenAt     *time.Time `json:"taken_at,omitempty"`

	// Reminder dispatch state, owned by the reminder worker
	RemindedAt *time.Time `gorm:"index" json:"reminded_at,omitempty"`
}

func (d *ScheduledDose) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = utils.NewID()
	}
	return nil
}
