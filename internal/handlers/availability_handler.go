package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	clock timezone.Clock
	uc    *appointment.GetAvailability
}

func NewAvailabilityHandler(clock timezone.Clock, uc *appointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{clock: clock, uc: uc}
}

type AvailabilityResponse struct {
	ProfessionalID uint     `json:"professional_id"`
	Date           string   `json:"date"`
	Slots          []string `json:"slots"`
}

// Get serves GET /availability?professional_id=1&date=2025-06-02.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}
	if professionalID == 0 {
		httperr.BadRequest(c, "invalid_request", "professional_id is required")
		return
	}

	date, err := parseDate(h.clock.Location(), c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.uc.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, AvailabilityResponse{
		ProfessionalID: professionalID,
		Date:           date.Format("2006-01-02"),
		Slots:          slots,
	})
}
