package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type seeded struct {
	repo *AppointmentGormRepository
	ap   *models.Appointment
}

var slotStart = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T) seeded {
	t.Helper()
	db := dbtest.Open(t)

	client := &models.Client{Name: "Joana", Phone: "11999990000", Active: true}
	svc := &models.Service{Name: "Haircut", Category: models.CategoryHair, Price: decimal.NewFromInt(50), Active: true}
	pro := &models.Professional{
		Name:         "Ana",
		WorkingStart: datatypes.NewTime(9, 0, 0, 0),
		WorkingEnd:   datatypes.NewTime(17, 0, 0, 0),
		WorkingDays:  schedule.DefaultWorkingDays,
		Active:       true,
	}
	for _, v := range []any{client, svc, pro} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	repo := NewAppointmentGormRepository(db)
	ap := newAppointment(client.ID, pro.ID, svc.ID)
	if err := repo.CreateAppointment(context.Background(), ap, createdEntry()); err != nil {
		t.Fatalf("create: %v", err)
	}
	return seeded{repo: repo, ap: ap}
}

func newAppointment(clientID, proID, svcID uint) *models.Appointment {
	return &models.Appointment{
		ClientID:       clientID,
		ProfessionalID: proID,
		ServiceID:      svcID,
		StartAt:        slotStart,
		Status:         string(domain.StatusScheduled),
		FinalPrice:     decimal.NewFromInt(50),
	}
}

func createdEntry() *models.HistoryEntry {
	return &models.HistoryEntry{
		Action:      string(domain.ActionCreated),
		Description: "Appointment created",
		Actor:       domain.SystemActor,
	}
}

func TestCreateAppointment_UniqueIndexBecomesSlotConflict(t *testing.T) {
	s := seed(t)

	dup := newAppointment(s.ap.ClientID, s.ap.ProfessionalID, s.ap.ServiceID)
	err := s.repo.CreateAppointment(context.Background(), dup, createdEntry())
	if !errors.Is(err, domain.ErrSlotConflict) {
		t.Fatalf("expected slot conflict, got %v", err)
	}

	// the failed insert must not leave a history row behind
	history, err := s.repo.ListHistory(context.Background(), s.ap.ID)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d (%v)", len(history), err)
	}
}

func TestHasActiveAppointmentAt(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	busy, err := s.repo.HasActiveAppointmentAt(ctx, s.ap.ProfessionalID, slotStart.In(time.FixedZone("BRT", -3*60*60)), 0)
	if err != nil || !busy {
		t.Fatalf("expected slot to be busy regardless of zone, got %v (%v)", busy, err)
	}

	busy, _ = s.repo.HasActiveAppointmentAt(ctx, s.ap.ProfessionalID, slotStart, s.ap.ID)
	if busy {
		t.Fatalf("excluded appointment must not block itself")
	}

	prev := domain.StatusScheduled
	s.ap.Status = string(domain.StatusCanceled)
	if err := s.repo.UpdateStatus(ctx, s.ap, prev, &models.HistoryEntry{
		AppointmentID: s.ap.ID,
		Action:        string(domain.ActionStatusChanged),
		Description:   "Appointment canceled",
		Actor:         domain.SystemActor,
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	busy, _ = s.repo.HasActiveAppointmentAt(ctx, s.ap.ProfessionalID, slotStart, 0)
	if busy {
		t.Fatalf("canceled appointment must release the slot")
	}
}

func TestUpdateStatus_CompareAndSet(t *testing.T) {
	s := seed(t)

	s.ap.Status = string(domain.StatusConfirmed)
	err := s.repo.UpdateStatus(context.Background(), s.ap, domain.StatusInProgress, &models.HistoryEntry{
		AppointmentID: s.ap.ID,
		Action:        string(domain.ActionStatusChanged),
		Description:   "Appointment confirmed",
		Actor:         domain.SystemActor,
	})
	if !errors.Is(err, domain.ErrStatusChanged) {
		t.Fatalf("expected stale status to be detected, got %v", err)
	}

	got, err := s.repo.GetAppointment(context.Background(), s.ap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != string(domain.StatusScheduled) {
		t.Fatalf("status must be untouched, got %s", got.Status)
	}
	if got.Client == nil || got.Professional == nil || got.Service == nil {
		t.Fatalf("expected associations to be preloaded")
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	history, err := s.repo.ListHistory(ctx, s.ap.ID)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d (%v)", len(history), err)
	}

	entry := history[0]
	entry.Description = "rewritten"
	if err := s.repo.db.Save(&entry).Error; !errors.Is(err, models.ErrHistoryImmutable) {
		t.Fatalf("expected update to be refused, got %v", err)
	}
	if err := s.repo.db.Delete(&entry).Error; !errors.Is(err, models.ErrHistoryImmutable) {
		t.Fatalf("expected delete to be refused, got %v", err)
	}
}

func TestGetters_NotFound(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	if _, err := s.repo.GetAppointment(ctx, 999); !httperr.IsNotFound(err, "appointment") {
		t.Fatalf("expected appointment not found, got %v", err)
	}
	if _, err := s.repo.GetClient(ctx, 999); !httperr.IsNotFound(err, "client") {
		t.Fatalf("expected client not found, got %v", err)
	}
	if _, err := s.repo.GetProfessional(ctx, 999); !httperr.IsNotFound(err, "professional") {
		t.Fatalf("expected professional not found, got %v", err)
	}
}

func TestListAppointments_Filters(t *testing.T) {
	s := seed(t)

	list, err := s.repo.ListAppointments(context.Background(), domain.ListFilter{
		ProfessionalID: s.ap.ProfessionalID,
		From:           slotStart.Add(-time.Hour),
		To:             slotStart.Add(time.Hour),
		Statuses:       []domain.Status{domain.StatusCompleted},
	})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected status filter to exclude scheduled, got %d (%v)", len(list), err)
	}

	starts, err := s.repo.ListActiveStarts(context.Background(), s.ap.ProfessionalID, slotStart, slotStart.Add(time.Hour))
	if err != nil || len(starts) != 1 || !starts[0].Equal(slotStart) {
		t.Fatalf("unexpected active starts %v (%v)", starts, err)
	}
}
