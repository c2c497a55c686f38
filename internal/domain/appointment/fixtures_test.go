package appointment

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var salonZone = time.FixedZone("BRT", -3*60*60)

// weekdayPro works Monday to Friday, 09:00 to 17:00.
func weekdayPro() *models.Professional {
	return &models.Professional{
		ID:           1,
		Name:         "Ana",
		WorkingStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:  schedule.MustWeekdaySet(1, 2, 3, 4, 5),
		Active:       true,
	}
}

// monday is 2025-06-02 at hh:mm in the salon zone.
func monday(hh, mm int) time.Time {
	return time.Date(2025, 6, 2, hh, mm, 0, 0, salonZone)
}
