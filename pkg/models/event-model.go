package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// EventType enum
type EventType string

const (
	EventMedicationCreated          EventType = "MedicationCreated"
	EventDoseTaken                  EventType = "DoseTaken"
	EventDoseDue                    EventType = "DoseDue"
	EventDoseOverdue                EventType = "DoseOverdue"
	EventCaretakerRelationCreated   EventType = "CaretakerRelationCreated"
	EventCaretakerRelationConfirmed EventType = "CaretakerRelationConfirmed"
)

// Event is an audit/notification feed entry for an account
type Event struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Type    EventType `gorm:"not null;index" json:"type"`
	Message string    `gorm:"not null" json:"message"`

	// Dedup key; the reminder worker relies on this to avoid double-firing
	Key string `gorm:"uniqueIndex;not null" json:"key"`

	AccountID string  `gorm:"not null;index" json:"account_id"`
	Account   Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`

	// Optional structured payload
	Metadata JSON `gorm:"type:json" json:"metadata,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.NewID()
	}
	return nil
}
