package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

var salonZone = time.FixedZone("BRT", -3*60*60)

type fixture struct {
	db     *gorm.DB
	repo   *repository.AppointmentGormRepository
	clock  timezone.FixedClock
	client *models.Client
	pro    *models.Professional
	svc    *models.Service
}

// newFixture seeds one client, one Monday-to-Friday 09:00-17:00
// professional qualified for a 50.00 haircut. "Now" is Monday 2025-06-02
// 08:00 in the salon.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)

	client := &models.Client{Name: "Joana", Phone: "11999990000", Active: true}
	svc := &models.Service{
		Name:     "Haircut",
		Category: models.CategoryHair,
		Price:    decimal.RequireFromString("50.00"),
		Active:   true,
	}
	pro := &models.Professional{
		Name:         "Ana",
		WorkingStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:  schedule.MustWeekdaySet(1, 2, 3, 4, 5),
		Active:       true,
	}

	for _, v := range []any{client, svc, pro} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := db.Model(pro).Association("Services").Append(svc); err != nil {
		t.Fatalf("qualify: %v", err)
	}

	return &fixture{
		db:     db,
		repo:   repository.NewAppointmentGormRepository(db),
		clock:  timezone.FixedClock{T: time.Date(2025, 6, 2, 8, 0, 0, 0, salonZone)},
		client: client,
		pro:    pro,
		svc:    svc,
	}
}

// tuesday is 2025-06-03 at hh:mm in the salon.
func tuesday(hh, mm int) time.Time {
	return time.Date(2025, 6, 3, hh, mm, 0, 0, salonZone)
}

func (f *fixture) input(start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID:       f.client.ID,
		ProfessionalID: f.pro.ID,
		ServiceID:      f.svc.ID,
		StartAt:        start,
	}
}

func (f *fixture) book(t *testing.T, start time.Time) *models.Appointment {
	t.Helper()
	ap, err := NewCreateAppointment(f.repo, nil, f.clock).Execute(t.Context(), f.input(start))
	if err != nil {
		t.Fatalf("book %s: %v", start.Format(time.RFC3339), err)
	}
	return ap
}

func (f *fixture) transition(t *testing.T, id uint, status string) {
	t.Helper()
	if _, err := NewTransitionStatus(f.repo, nil, f.clock).Execute(t.Context(), TransitionInput{
		AppointmentID: id,
		Status:        status,
	}); err != nil {
		t.Fatalf("transition to %s: %v", status, err)
	}
}

func (f *fixture) historyCount(t *testing.T, id uint) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&models.HistoryEntry{}).Where("appointment_id = ?", id).Count(&n).Error; err != nil {
		t.Fatalf("count history: %v", err)
	}
	return n
}
