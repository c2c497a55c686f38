package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:  repo,
		clock: clock,
	}
}

// Execute lists one salon day. professionalID 0 lists every professional.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	professionalID uint,
	date time.Time,
	statuses []domain.Status,
) ([]dto.AppointmentListDTO, error) {

	loc := uc.clock.Location()
	start := schedule.StartOfDay(date, loc)

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		ProfessionalID: professionalID,
		From:           start,
		To:             start.AddDate(0, 0, 1),
		Statuses:       statuses,
	})
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}

func toListDTO(appointments []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:             ap.ID,
			StartAt:        ap.StartAt.In(loc),
			EndAt:          ap.EndAt().In(loc),
			Time:           ap.StartAt.In(loc).Format("15:04"),
			Status:         ap.Status,
			ClientID:       ap.ClientID,
			ProfessionalID: ap.ProfessionalID,
			FinalPrice:     ap.FinalPrice,
		}
		if ap.Client != nil {
			item.ClientName = ap.Client.Name
		}
		if ap.Professional != nil {
			item.ProfessionalName = ap.Professional.Name
		}
		if ap.Service != nil {
			item.ServiceName = ap.Service.Name
		}
		out = append(out, item)
	}
	return out
}
