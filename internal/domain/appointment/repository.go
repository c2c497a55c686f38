package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ListFilter selects appointments whose StartAt lies in [From, To).
// Zero ProfessionalID and empty Statuses match everything.
type ListFilter struct {
	ProfessionalID uint
	From           time.Time
	To             time.Time
	Statuses       []Status
}

type Repository interface {
	SlotOccupancy

	// -------- Catalog --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	// GetProfessional preloads the professional's qualified services.
	GetProfessional(
		ctx context.Context,
		id uint,
	) (*models.Professional, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment (create) --------
	// CreateAppointment inserts ap and its CREATED entry atomically.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.HistoryEntry,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// UpdateStatus persists ap.Status only if the stored status is still
	// previous, together with entry.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
		previous Status,
		entry *models.HistoryEntry,
	) error

	UpdateStart(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.HistoryEntry,
	) error

	UpdateDetails(
		ctx context.Context,
		ap *models.Appointment,
		entry *models.HistoryEntry,
	) error

	// -------- Availability / listing --------
	ListActiveStarts(
		ctx context.Context,
		professionalID uint,
		from time.Time,
		to time.Time,
	) ([]time.Time, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- History --------
	ListHistory(
		ctx context.Context,
		appointmentID uint,
	) ([]models.HistoryEntry, error)
}
