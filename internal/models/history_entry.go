package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrHistoryImmutable = errors.New("appointment history is append-only")

// HistoryEntry is one immutable line in an appointment's audit trail.
type HistoryEntry struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"not null;index" json:"appointment_id"`

	Action         string  `gorm:"size:20;not null" json:"action"`
	PreviousStatus *string `gorm:"size:20" json:"previous_status"`
	NewStatus      *string `gorm:"size:20" json:"new_status"`

	Description string `gorm:"size:500;not null" json:"description"`
	Actor       string `gorm:"size:100;not null" json:"actor"`
	Notes       string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (HistoryEntry) TableName() string {
	return "appointment_history"
}

func (*HistoryEntry) BeforeUpdate(*gorm.DB) error {
	return ErrHistoryImmutable
}

func (*HistoryEntry) BeforeDelete(*gorm.DB) error {
	return ErrHistoryImmutable
}
