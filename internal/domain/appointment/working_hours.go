package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CheckWorkingHours validates a candidate start against the professional's
// working schedule. start must already be in the salon location.
// Checks run in order and the first failure wins.
func CheckWorkingHours(p *models.Professional, start time.Time) error {
	if !p.WorkingDays.Contains(schedule.ISOWeekday(start)) {
		return ErrNonWorkingDay
	}

	tod := schedule.TimeOfDay(start)
	if tod < p.OpensAt() || tod >= p.ClosesAt() {
		return ErrOutsideWorkingHours
	}

	if tod+schedule.SlotDuration > p.ClosesAt() {
		return ErrExtendsPastClosing
	}

	if start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return ErrNotWholeHour
	}
	return nil
}
