package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

// Execute returns the appointment's history, newest first.
func (uc *ListHistory) Execute(ctx context.Context, appointmentID uint) ([]models.HistoryEntry, error) {
	if _, err := uc.repo.GetAppointment(ctx, appointmentID); err != nil {
		return nil, err
	}
	return uc.repo.ListHistory(ctx, appointmentID)
}
