package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCanceled   Status = "CANCELED"
	StatusNoShow     Status = "NO_SHOW"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCanceled,
	StatusNoShow,
}

// transitions lists every allowed move. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCanceled},
	StatusConfirmed:  {StatusInProgress, StatusCanceled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCanceled},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// OccupiesSlot reports whether an appointment in this state holds its slot.
// COMPLETED keeps the slot (the time has been used); CANCELED and NO_SHOW
// release it.
func (s Status) OccupiesSlot() bool {
	return s != StatusCanceled && s != StatusNoShow
}

// IsActive is true for the states that block new bookings in availability.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed || s == StatusInProgress
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusScheduled
}

// ActiveStatusValues are the raw values of the states availability shows
// as taken.
func ActiveStatusValues() []string {
	return statusValues(Status.IsActive)
}

// ReleasedStatusValues are the states that free their slot.
func ReleasedStatusValues() []string {
	return statusValues(func(s Status) bool { return !s.OccupiesSlot() })
}

func statusValues(keep func(Status) bool) []string {
	var out []string
	for _, s := range allStatuses {
		if keep(s) {
			out = append(out, string(s))
		}
	}
	return out
}

// ===============================
// Validations
// ===============================

// CheckTransition applies the transition guards in order: past in-progress,
// completion source, then the transition table.
func CheckTransition(current, target Status, startAt, now time.Time) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}

	if target == StatusInProgress {
		loc := now.Location()
		if schedule.StartOfDay(startAt, loc).Before(schedule.StartOfDay(now, loc)) {
			return ErrInProgressPast
		}
	}

	if target == StatusCompleted &&
		current != StatusConfirmed && current != StatusInProgress {
		return ErrCannotComplete
	}

	if !current.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	return nil
}
