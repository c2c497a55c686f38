package appointment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// UpdateDetailsInput carries optional changes; nil fields are left alone.
type UpdateDetailsInput struct {
	AppointmentID uint
	Notes         *string
	FinalPrice    *decimal.Decimal
	Actor         string
}

type UpdateAppointmentDetails struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewUpdateAppointmentDetails(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *UpdateAppointmentDetails {
	return &UpdateAppointmentDetails{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *UpdateAppointmentDetails) Execute(
	ctx context.Context,
	in UpdateDetailsInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	var changes []string
	if in.Notes != nil && *in.Notes != ap.Notes {
		ap.Notes = *in.Notes
		changes = append(changes, "notes")
	}
	if in.FinalPrice != nil {
		if !in.FinalPrice.IsPositive() {
			return nil, domain.ErrInvalidPrice
		}
		if !in.FinalPrice.Equal(ap.FinalPrice) {
			changes = append(changes, "final price "+ap.FinalPrice.StringFixed(2)+" -> "+in.FinalPrice.StringFixed(2))
			ap.FinalPrice = *in.FinalPrice
		}
	}

	// nothing to record
	if len(changes) == 0 {
		return ap, nil
	}

	actor := domain.ResolveActor(in.Actor)
	if err := uc.repo.UpdateDetails(ctx, ap, domain.DataChangedEntry(ap, changes, actor)); err != nil {
		return nil, err
	}

	ev := appointmentEvent(audit.ActionAppointmentUpdated, ap, uc.clock.Location(), actor, map[string]any{
		"changes": changes,
	})
	// details never change availability
	ev.Days = nil
	uc.audit.Dispatch(ev)

	return ap, nil
}
