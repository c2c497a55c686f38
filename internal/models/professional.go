package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

var (
	DefaultWorkingStart = datatypes.NewTime(8, 0, 0, 0)
	DefaultWorkingEnd   = datatypes.NewTime(18, 0, 0, 0)
)

// Professional performs services. Working hours are times of day in the
// salon time zone.
type Professional struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null;index" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	WorkingStart datatypes.Time      `gorm:"not null" json:"working_start"`
	WorkingEnd   datatypes.Time      `gorm:"not null" json:"working_end"`
	WorkingDays  schedule.WeekdaySet `gorm:"not null" json:"working_days"`

	Active bool `gorm:"not null;index" json:"active"`

	// Services the professional is qualified to perform.
	Services []Service `gorm:"many2many:professional_services;" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Professional) OpensAt() time.Duration  { return time.Duration(p.WorkingStart) }
func (p *Professional) ClosesAt() time.Duration { return time.Duration(p.WorkingEnd) }

func (p *Professional) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.OpensAt() >= p.ClosesAt() {
		return errors.New("working start must be before working end")
	}
	if p.WorkingDays.IsEmpty() {
		return errors.New("at least one working day is required")
	}
	return nil
}

// Performs reports whether serviceID is among the preloaded qualifications.
func (p *Professional) Performs(serviceID uint) bool {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}
