package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SystemActor is recorded when no user is associated with a change.
const SystemActor = "system"

type Action string

const (
	ActionCreated       Action = "CREATED"
	ActionStatusChanged Action = "STATUS_CHANGED"
	ActionDataChanged   Action = "DATA_CHANGED"
	ActionRescheduled   Action = "RESCHEDULED"
)

var statusDescriptions = map[Status]string{
	StatusScheduled:  "Appointment scheduled",
	StatusConfirmed:  "Client confirmed the appointment",
	StatusInProgress: "Service started",
	StatusCompleted:  "Service completed successfully",
	StatusCanceled:   "Appointment was canceled",
	StatusNoShow:     "Client did not show up",
}

func StatusDescription(s Status) string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return "Status changed to " + string(s)
}

func ResolveActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return SystemActor
	}
	return actor
}

func statusPtr(s Status) *string {
	v := string(s)
	return &v
}

func CreatedEntry(ap *models.Appointment, clientName, professionalName, actor string) *models.HistoryEntry {
	return &models.HistoryEntry{
		AppointmentID: ap.ID,
		Action:        string(ActionCreated),
		NewStatus:     statusPtr(Status(ap.Status)),
		Description:   fmt.Sprintf("Appointment created for %s with %s", clientName, professionalName),
		Actor:         ResolveActor(actor),
	}
}

func StatusChangedEntry(ap *models.Appointment, previous Status, actor string) *models.HistoryEntry {
	next := Status(ap.Status)
	return &models.HistoryEntry{
		AppointmentID:  ap.ID,
		Action:         string(ActionStatusChanged),
		PreviousStatus: statusPtr(previous),
		NewStatus:      statusPtr(next),
		Description:    StatusDescription(next),
		Actor:          ResolveActor(actor),
	}
}

func RescheduledEntry(ap *models.Appointment, previousStart time.Time, loc *time.Location, actor string) *models.HistoryEntry {
	const layout = "2006-01-02 15:04"
	return &models.HistoryEntry{
		AppointmentID: ap.ID,
		Action:        string(ActionRescheduled),
		Description: fmt.Sprintf("Rescheduled from %s to %s",
			previousStart.In(loc).Format(layout), ap.StartAt.In(loc).Format(layout)),
		Actor: ResolveActor(actor),
	}
}

func DataChangedEntry(ap *models.Appointment, changes []string, actor string) *models.HistoryEntry {
	return &models.HistoryEntry{
		AppointmentID: ap.ID,
		Action:        string(ActionDataChanged),
		Description:   "Appointment details updated: " + strings.Join(changes, ", "),
		Actor:         ResolveActor(actor),
	}
}
