package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	ProfessionalID uint
	Date           time.Time
}

// OpenSlots lists the free "HH:MM" starts of p on day. occupied holds the
// start instants of the day's slot-blocking appointments; they are compared
// by time of day in day's location.
func OpenSlots(p *models.Professional, day time.Time, occupied []time.Time) []string {
	slots := []string{}
	if !p.WorkingDays.Contains(schedule.ISOWeekday(day)) {
		return slots
	}

	loc := day.Location()
	taken := make(map[time.Duration]struct{}, len(occupied))
	for _, start := range occupied {
		taken[schedule.TimeOfDay(start.In(loc))] = struct{}{}
	}

	for cur := p.OpensAt(); cur+schedule.SlotDuration <= p.ClosesAt(); cur += schedule.SlotDuration {
		if _, busy := taken[cur]; busy {
			continue
		}
		slots = append(slots, schedule.FormatClock(cur))
	}
	return slots
}
