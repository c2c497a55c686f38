package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID       uint
	ProfessionalID uint
	ServiceID      uint

	StartAt time.Time
	Notes   string

	// PriceOverride replaces the service price when set.
	PriceOverride *decimal.Decimal
	// InitialStatus is SCHEDULED when empty; CONFIRMED is also accepted.
	InitialStatus domain.Status

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	validator *domain.ConflictValidator
	audit     *audit.Dispatcher
	clock     timezone.Clock
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		validator: domain.NewConflictValidator(repo, clock.Location()),
		audit:     audit,
		clock:     clock,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc := uc.clock.Location()
	actor := domain.ResolveActor(in.Actor)

	status := in.InitialStatus
	if status == "" {
		status = domain.InitialStatus()
	}
	if status != domain.StatusScheduled && status != domain.StatusConfirmed {
		return nil, domain.ErrInvalidInitialStatus
	}

	// --------------------------------------------------
	// 1️⃣ Client / professional / service
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, httperr.ErrNotFound("client")
	}

	pro, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !pro.Active {
		return nil, httperr.ErrNotFound("professional")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrNotFound("service")
	}

	// --------------------------------------------------
	// 2️⃣ Qualification
	// --------------------------------------------------
	if !pro.Performs(svc.ID) {
		return nil, domain.ErrNotQualified
	}

	// --------------------------------------------------
	// 3️⃣ Working schedule + exclusivity
	// --------------------------------------------------
	start := in.StartAt.In(loc)
	if err := uc.validator.Validate(ctx, pro, start, 0); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.dispatchConflict(pro.ID, start, actor, "precheck")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Past check
	// --------------------------------------------------
	if !start.After(uc.clock.Now()) {
		return nil, domain.ErrInPast
	}

	// --------------------------------------------------
	// 5️⃣ Price
	// --------------------------------------------------
	price := svc.Price
	if in.PriceOverride != nil {
		if !in.PriceOverride.IsPositive() {
			return nil, domain.ErrInvalidPrice
		}
		price = *in.PriceOverride
	}

	// --------------------------------------------------
	// 6️⃣ Appointment + CREATED history, atomically
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:       client.ID,
		ProfessionalID: pro.ID,
		ServiceID:      svc.ID,
		StartAt:        start,
		Status:         string(status),
		Notes:          in.Notes,
		FinalPrice:     price,
	}
	entry := domain.CreatedEntry(ap, client.Name, pro.Name, actor)

	if err := uc.repo.CreateAppointment(ctx, ap, entry); err != nil {
		if errors.Is(err, domain.ErrSlotConflict) {
			uc.dispatchConflict(pro.ID, start, actor, "unique_index")
			return nil, domain.ErrSlotTaken
		}
		return nil, err
	}

	ap.Client = client
	ap.Professional = pro
	ap.Service = svc

	// --------------------------------------------------
	// 7️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(appointmentEvent(audit.ActionAppointmentCreated, ap, loc, actor, map[string]any{
		"client_id":  client.ID,
		"service_id": svc.ID,
		"status":     ap.Status,
	}))

	return ap, nil
}

func (uc *CreateAppointment) dispatchConflict(professionalID uint, start time.Time, actor, detectedBy string) {
	uc.audit.Dispatch(audit.Event{
		Action:         audit.ActionAppointmentConflict,
		Entity:         entityAppointment,
		ProfessionalID: professionalID,
		Actor:          actor,
		Metadata: map[string]any{
			"start_at":    start.UTC(),
			"detected_by": detectedBy,
			"reason":      domain.ErrSlotTaken.Error(),
		},
	})
}
