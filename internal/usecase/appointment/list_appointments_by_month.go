package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	professionalID uint,
	year int,
	month time.Month,
) ([]dto.AppointmentListDTO, error) {

	loc := uc.clock.Location()
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	appointments, err := uc.repo.ListAppointments(ctx, domain.ListFilter{
		ProfessionalID: professionalID,
		From:           start,
		To:             start.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}
