package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// Medication represents a prescribed medication with its scheduling parameters
type Medication struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	AccountID string  `gorm:"not null;index" json:"account_id"`
	Account   Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`

	Name      string `gorm:"not null" json:"name"`
	Dosage    string `gorm:"not null" json:"dosage"`
	Frequency string `gorm:"not null" json:"frequency"`

	// Inclusive calendar bounds for the dose schedule
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	// Whether the schedule was generated from learned per-quarter times
	Personalized bool `gorm:"default:false" json:"personalized"`

	// Relationships
	ScheduledDoses []ScheduledDose `gorm:"foreignKey:MedicationID" json:"scheduled_doses,omitempty"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.NewID()
	}
	return nil
}
