package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
)

type ReportHandler struct {
	clock     timezone.Clock
	completed *report.CompletedServices
}

func NewReportHandler(clock timezone.Clock, completed *report.CompletedServices) *ReportHandler {
	return &ReportHandler{clock: clock, completed: completed}
}

// CompletedServices serves GET /reports/services?from&to&professional_id.
func (h *ReportHandler) CompletedServices(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}

	in := report.Input{ProfessionalID: professionalID}

	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(h.clock.Location(), raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		in.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(h.clock.Location(), raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		in.To = to
	}

	rep, err := h.completed.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, rep)
}
