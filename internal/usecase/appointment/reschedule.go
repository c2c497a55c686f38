package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type RescheduleInput struct {
	AppointmentID uint
	StartAt       time.Time
	Actor         string
}

type RescheduleAppointment struct {
	repo      domain.Repository
	validator *domain.ConflictValidator
	audit     *audit.Dispatcher
	clock     timezone.Clock
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:      repo,
		validator: domain.NewConflictValidator(repo, clock.Location()),
		audit:     audit,
		clock:     clock,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	loc := uc.clock.Location()

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.EnsureEditable(ap); err != nil {
		return nil, err
	}

	pro, err := uc.repo.GetProfessional(ctx, ap.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !pro.Active {
		return nil, httperr.ErrNotFound("professional")
	}

	start := in.StartAt.In(loc)
	if err := uc.validator.Validate(ctx, pro, start, ap.ID); err != nil {
		return nil, err
	}
	if !start.After(uc.clock.Now()) {
		return nil, domain.ErrInPast
	}

	previousStart := ap.StartAt
	ap.StartAt = start

	actor := domain.ResolveActor(in.Actor)
	entry := domain.RescheduledEntry(ap, previousStart, loc, actor)

	if err := uc.repo.UpdateStart(ctx, ap, entry); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}

	ev := appointmentEvent(audit.ActionAppointmentRescheduled, ap, loc, actor, map[string]any{
		"from": previousStart.UTC(),
		"to":   ap.StartAt.UTC(),
	})
	if day := dayKey(previousStart, loc); day != ev.Days[0] {
		ev.Days = append(ev.Days, day)
	}
	uc.audit.Dispatch(ev)

	return ap, nil
}
