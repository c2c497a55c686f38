package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action string `gorm:"size:50;not null;index" json:"action"`
	Actor  string `gorm:"size:100" json:"actor"`

	Entity         string `gorm:"size:50" json:"entity"`
	EntityID       *uint  `json:"entity_id"`
	ProfessionalID *uint  `gorm:"index" json:"professional_id"`
	Metadata       string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
