package appointment

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var (
	ErrNonWorkingDay       = httperr.ErrValidation("non_working_day", "non-working day")
	ErrOutsideWorkingHours = httperr.ErrValidation("outside_working_hours", "outside working hours")
	ErrExtendsPastClosing  = httperr.ErrValidation("extends_past_closing", "service would extend past closing")
	ErrNotWholeHour        = httperr.ErrValidation("not_whole_hour", "must be a whole hour")
	ErrSlotTaken           = httperr.ErrValidation("slot_taken", "slot already taken")

	ErrInPast       = httperr.ErrValidation("in_past", "cannot schedule in the past")
	ErrNotQualified = httperr.ErrValidation("not_qualified", "professional does not perform this service")
	ErrInvalidPrice = httperr.ErrValidation("invalid_price", "final price must be greater than zero")
	ErrNotEditable  = httperr.ErrValidation("not_editable", "appointment can no longer be changed")

	ErrInvalidStatus        = httperr.ErrValidation("invalid_status", "invalid status")
	ErrInvalidInitialStatus = httperr.ErrValidation("invalid_status", "appointments start as SCHEDULED or CONFIRMED")
	ErrInProgressPast       = httperr.ErrValidation("in_progress_past", "cannot mark a past appointment as in progress")
	ErrCannotComplete       = httperr.ErrValidation("cannot_complete", "cannot complete from this state")
	ErrInvalidTransition    = httperr.ErrValidation("invalid_transition", "invalid status transition")
)

// Storage-level signals. The use cases translate them into the errors above.
var (
	// ErrSlotConflict wraps a violation of the active-slot unique index.
	ErrSlotConflict = errors.New("active appointment already exists for professional at this start")
	// ErrStatusChanged means a compare-and-set status update matched no row.
	ErrStatusChanged = errors.New("appointment status changed concurrently")
)
