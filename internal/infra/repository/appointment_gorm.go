package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var pro models.Professional
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&pro, id).Error; err != nil {
		return nil, notFound(err, "professional")
	}
	return &pro, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return &svc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// HasActiveAppointmentAt mirrors the partial unique index: anything not
// CANCELED or NO_SHOW holds the slot.
func (r *AppointmentGormRepository) HasActiveAppointmentAt(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("professional_id = ? AND start_at = ? AND status NOT IN ?",
			professionalID,
			start.UTC(),
			domain.ReleasedStatusValues(),
		)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.HistoryEntry,
) error {

	ap.StartAt = ap.StartAt.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Professional", "Service", "History").
			Create(ap).Error; err != nil {
			return err
		}
		entry.AppointmentID = ap.ID
		return tx.Create(entry).Error
	})
	if isUniqueViolation(err) {
		return slotConflict(err)
	}
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	previous domain.Status,
	entry *models.HistoryEntry,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", ap.ID, string(previous)).
			Update("status", ap.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusChanged
		}
		return tx.Create(entry).Error
	})
	if isUniqueViolation(err) {
		return slotConflict(err)
	}
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateStart(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.HistoryEntry,
) error {

	ap.StartAt = ap.StartAt.UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("start_at", ap.StartAt).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if isUniqueViolation(err) {
		return slotConflict(err)
	}
	if err != nil {
		return fmt.Errorf("reschedule appointment: %w", err)
	}
	return nil
}

func (r *AppointmentGormRepository) UpdateDetails(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.HistoryEntry,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Updates(map[string]any{
				"notes":       ap.Notes,
				"final_price": ap.FinalPrice,
			}).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return fmt.Errorf("update appointment details: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Availability / listing
// --------------------------------------------------

// ListActiveStarts returns the starts of SCHEDULED, CONFIRMED and
// IN_PROGRESS appointments in [from, to).
func (r *AppointmentGormRepository) ListActiveStarts(
	ctx context.Context,
	professionalID uint,
	from time.Time,
	to time.Time,
) ([]time.Time, error) {

	var starts []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("professional_id = ? AND status IN ? AND start_at >= ? AND start_at < ?",
			professionalID,
			domain.ActiveStatusValues(),
			from.UTC(),
			to.UTC(),
		).
		Order("start_at ASC").
		Pluck("start_at", &starts).Error; err != nil {
		return nil, fmt.Errorf("list occupied slots: %w", err)
	}
	return starts, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Professional").
		Preload("Service").
		Where("start_at >= ? AND start_at < ?", filter.From.UTC(), filter.To.UTC())

	if filter.ProfessionalID != 0 {
		q = q.Where("professional_id = ?", filter.ProfessionalID)
	}
	if len(filter.Statuses) > 0 {
		values := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			values[i] = string(s)
		}
		q = q.Where("status IN ?", values)
	}

	var list []models.Appointment
	if err := q.Order("start_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *AppointmentGormRepository) ListHistory(
	ctx context.Context,
	appointmentID uint,
) ([]models.HistoryEntry, error) {

	var entries []models.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
