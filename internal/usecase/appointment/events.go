package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const entityAppointment = "appointment"

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func appointmentEvent(action string, ap *models.Appointment, loc *time.Location, actor string, meta any) audit.Event {
	id := ap.ID
	return audit.Event{
		Action:         action,
		Entity:         entityAppointment,
		EntityID:       &id,
		ProfessionalID: ap.ProfessionalID,
		Days:           []string{dayKey(ap.StartAt, loc)},
		Actor:          actor,
		Metadata:       meta,
	}
}
