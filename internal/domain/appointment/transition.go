package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to target and returns the previous status.
func Transition(ap *models.Appointment, target Status, now time.Time) (Status, error) {
	previous := Status(ap.Status)
	if err := CheckTransition(previous, target, ap.StartAt, now); err != nil {
		return previous, err
	}

	ap.Status = string(target)
	return previous, nil
}

// EnsureEditable rejects changes to appointments in a terminal state.
func EnsureEditable(ap *models.Appointment) error {
	if Status(ap.Status).IsTerminal() {
		return ErrNotEditable
	}
	return nil
}
