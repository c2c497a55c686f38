package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentListDTO struct {
	ID               uint            `json:"id"`
	StartAt          time.Time       `json:"start_at"`
	EndAt            time.Time       `json:"end_at"`
	Time             string          `json:"time"`
	Status           string          `json:"status"`
	ClientID         uint            `json:"client_id"`
	ClientName       string          `json:"client_name"`
	ProfessionalID   uint            `json:"professional_id"`
	ProfessionalName string          `json:"professional_name"`
	ServiceName      string          `json:"service_name"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}
