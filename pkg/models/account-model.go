package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// AccountRole enum
type AccountRole string

const (
	RolePatient   AccountRole = "patient"
	RoleCaretaker AccountRole = "caretaker"
)

// Account represents a registered patient or caretaker
type Account struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	Name         string      `gorm:"not null" json:"name"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         AccountRole `gorm:"not null;default:'patient';index" json:"role"`

	// Relationships
	Medications       []Medication       `gorm:"foreignKey:AccountID" json:"medications,omitempty"`
	TimingPreferences []TimingPreference `gorm:"foreignKey:AccountID" json:"timing_preferences,omitempty"`
	Events            []Event            `gorm:"foreignKey:AccountID" json:"events,omitempty"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.NewID()
	}
	return nil
}
