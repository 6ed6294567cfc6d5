package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/Zyelixify/MediGuard/pkg/utils"
)

// TimingPreference is the learned timing statistic for one (account, quarter)
// pair. At most one record exists per pair, enforced by a unique index; the
// read-modify-write in the timing tracker relies on that constraint.
type TimingPreference struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	AccountID string  `gorm:"not null;uniqueIndex:idx_account_quarter" json:"account_id"`
	Account   Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`

	// One of morning, afternoon, evening, night
	Quarter string `gorm:"not null;uniqueIndex:idx_account_quarter" json:"quarter"`

	// HH:MM, 24-hour, always within the quarter's hour bounds
	PreferredTime string `gorm:"not null" json:"preferred_time"`

	// Count of doses that contributed to the running average
	TotalTaken int `gorm:"not null;default:0" json:"total_taken"`

	// Signed running mean delay in minutes; positive = late, negative = early
	AverageDelay int `gorm:"not null;default:0" json:"average_delay"`
}

func (p *TimingPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	return nil
}
