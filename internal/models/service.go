package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

const (
	CategoryHair       = "HAIR"
	CategoryNails      = "NAILS"
	CategoryAesthetics = "AESTHETICS"
	CategoryMassage    = "MASSAGE"
	CategoryOther      = "OTHER"
)

func IsValidCategory(c string) bool {
	switch c {
	case CategoryHair, CategoryNails, CategoryAesthetics, CategoryMassage, CategoryOther:
		return true
	}
	return false
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string          `gorm:"size:100;not null;index" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:20;not null;default:'OTHER';index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Active      bool            `gorm:"not null;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration is fixed for every service.
func (s *Service) Duration() time.Duration {
	return schedule.SlotDuration
}

func (s *Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("name is required")
	}
	if !s.Price.IsPositive() {
		return errors.New("price must be greater than zero")
	}
	if s.Category != "" && !IsValidCategory(s.Category) {
		return errors.New("invalid category")
	}
	return nil
}
