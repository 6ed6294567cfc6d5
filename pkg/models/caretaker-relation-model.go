package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// CaretakerRelation links a caretaker account to a patient account. The
// relation is created by the caretaker and must be confirmed by the patient.
type CaretakerRelation struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	PatientID string  `gorm:"not null;uniqueIndex:idx_patient_caretaker" json:"patient_id"`
	Patient   Account `gorm:"foreignKey:PatientID" json:"patient,omitempty"`

	CaretakerID string  `gorm:"not null;uniqueIndex:idx_patient_caretaker" json:"caretaker_id"`
	Caretaker   Account `gorm:"foreignKey:CaretakerID" json:"caretaker,omitempty"`

	IsConfirmed bool `gorm:"default:false" json:"is_confirmed"`
}

func (r *CaretakerRelation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.NewID()
	}
	return nil
}
