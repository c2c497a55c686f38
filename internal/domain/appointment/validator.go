package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SlotOccupancy answers the exclusivity question for the validator.
type SlotOccupancy interface {
	HasActiveAppointmentAt(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		excludeID uint,
	) (bool, error)
}

// ConflictValidator decides whether a professional can take a candidate slot.
type ConflictValidator struct {
	slots SlotOccupancy
	loc   *time.Location
}

func NewConflictValidator(slots SlotOccupancy, loc *time.Location) *ConflictValidator {
	return &ConflictValidator{slots: slots, loc: loc}
}

// Validate returns nil or the first failing ValidationError. excludeID skips
// the appointment being rescheduled; pass 0 for new bookings.
func (v *ConflictValidator) Validate(
	ctx context.Context,
	p *models.Professional,
	start time.Time,
	excludeID uint,
) error {
	if err := CheckWorkingHours(p, start.In(v.loc)); err != nil {
		return err
	}

	taken, err := v.slots.HasActiveAppointmentAt(ctx, p.ID, start, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}
	return nil
}
