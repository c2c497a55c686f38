package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

// Appointment reserves one slot of a professional for a client and service.
// StartAt is always persisted in UTC.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	ProfessionalID uint          `gorm:"not null;index:idx_appointments_professional_start,priority:1" json:"professional_id"`
	Professional   *Professional `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"professional,omitempty"`

	ServiceID uint     `gorm:"not null;index" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartAt time.Time `gorm:"not null;index:idx_appointments_professional_start,priority:2" json:"start_at"`
	Status  string    `gorm:"size:20;not null;index" json:"status"`

	Notes      string          `gorm:"type:text" json:"notes"`
	FinalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"final_price"`

	History []HistoryEntry `gorm:"constraint:OnDelete:CASCADE;" json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) EndAt() time.Time {
	return a.StartAt.Add(schedule.SlotDuration)
}
