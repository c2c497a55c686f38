package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type TransitionInput struct {
	AppointmentID uint
	Status        string
	Actor         string
}

// TransitionStatus drives the appointment state machine.
type TransitionStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewTransitionStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *TransitionStatus {
	return &TransitionStatus{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *TransitionStatus) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	target, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	previous, err := domain.Transition(ap, target, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	actor := domain.ResolveActor(in.Actor)
	entry := domain.StatusChangedEntry(ap, previous, actor)

	if err := uc.repo.UpdateStatus(ctx, ap, previous, entry); err != nil {
		if errors.Is(err, domain.ErrStatusChanged) {
			return nil, domain.ErrInvalidTransition
		}
		return nil, err
	}

	uc.audit.Dispatch(appointmentEvent(audit.ActionAppointmentStatusChanged, ap, uc.clock.Location(), actor, map[string]any{
		"from": string(previous),
		"to":   ap.Status,
	}))

	return ap, nil
}
