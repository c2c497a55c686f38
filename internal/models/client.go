package models

import (
	"time"

	"gorm.io/datatypes"
)

// Client is a salon customer. Clients have no login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null;index" json:"name"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Address string `gorm:"size:200" json:"address"`

	BirthDate *datatypes.Date `json:"birth_date"`
	Notes     string          `gorm:"type:text" json:"notes"`
	Active    bool            `gorm:"not null;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
