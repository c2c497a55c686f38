package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	clock timezone.Clock

	create     *appointment.CreateAppointment
	transition *appointment.TransitionStatus
	reschedule *appointment.RescheduleAppointment
	update     *appointment.UpdateAppointmentDetails
	get        *appointment.GetAppointment
	history    *appointment.ListHistory
	byDate     *appointment.ListAppointmentsByDate
	byMonth    *appointment.ListAppointmentsByMonth
}

type AppointmentUseCases struct {
	Create     *appointment.CreateAppointment
	Transition *appointment.TransitionStatus
	Reschedule *appointment.RescheduleAppointment
	Update     *appointment.UpdateAppointmentDetails
	Get        *appointment.GetAppointment
	History    *appointment.ListHistory
	ByDate     *appointment.ListAppointmentsByDate
	ByMonth    *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(clock timezone.Clock, uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{
		clock:      clock,
		create:     uc.Create,
		transition: uc.Transition,
		reschedule: uc.Reschedule,
		update:     uc.Update,
		get:        uc.Get,
		history:    uc.History,
		byDate:     uc.ByDate,
		byMonth:    uc.ByMonth,
	}
}

// ======================================================
// DTOs
// ======================================================

type CreateAppointmentRequest struct {
	ClientID       uint             `json:"client_id" binding:"required"`
	ProfessionalID uint             `json:"professional_id" binding:"required"`
	ServiceID      uint             `json:"service_id" binding:"required"`
	Date           string           `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string           `json:"time" binding:"required"` // HH:mm
	Notes          string           `json:"notes"`
	FinalPrice     *decimal.Decimal `json:"final_price"`
	Confirmed      bool             `json:"confirmed"`
	Actor          string           `json:"actor"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Actor  string `json:"actor"`
}

type RescheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Actor string `json:"actor"`
}

type UpdateAppointmentRequest struct {
	Notes      *string          `json:"notes,omitempty"`
	FinalPrice *decimal.Decimal `json:"final_price,omitempty"`
	Actor      string           `json:"actor"`
}

type actorOnlyRequest struct {
	Actor string `json:"actor"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTime(h.clock.Location(), req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
		return
	}

	in := appointment.CreateAppointmentInput{
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		StartAt:        start,
		Notes:          strings.TrimSpace(req.Notes),
		PriceOverride:  req.FinalPrice,
		Actor:          actorFor(c, req.Actor),
	}
	if req.Confirmed {
		in.InitialStatus = domain.StatusConfirmed
	}

	ap, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.history.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, entries)
}

// ListByDate serves GET /appointments?date=YYYY-MM-DD[&professional_id][&status].
// Without a date it lists today.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}

	date := h.clock.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDate(h.clock.Location(), raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	var statuses []domain.Status
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			st, err := domain.ParseStatus(strings.ToUpper(strings.TrimSpace(s)))
			if err != nil {
				httperr.Respond(c, err)
				return
			}
			statuses = append(statuses, st)
		}
	}

	list, err := h.byDate.Execute(c.Request.Context(), professionalID, date, statuses)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	professionalID, ok := queryID(c, "professional_id")
	if !ok {
		return
	}

	now := h.clock.Now()
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 2000 || y > 2100 {
			httperr.BadRequest(c, "invalid_year", "invalid year")
			return
		}
		year = y
	}
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			httperr.BadRequest(c, "invalid_month", "month must be between 1 and 12")
			return
		}
		month = time.Month(m)
	}

	list, err := h.byMonth.Execute(c.Request.Context(), professionalID, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	h.applyStatus(c, strings.ToUpper(strings.TrimSpace(req.Status)), req.Actor)
}

// StatusShortcut builds the /confirm, /start, /complete, /cancel and
// /no-show endpoints. The body is optional.
func (h *AppointmentHandler) StatusShortcut(target domain.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req actorOnlyRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				httperr.BadRequest(c, "invalid_request", err.Error())
				return
			}
		}
		h.applyStatus(c, string(target), req.Actor)
	}
}

func (h *AppointmentHandler) applyStatus(c *gin.Context, status, bodyActor string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), appointment.TransitionInput{
		AppointmentID: id,
		Status:        status,
		Actor:         actorFor(c, bodyActor),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// EDIT
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTime(h.clock.Location(), req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), appointment.RescheduleInput{
		AppointmentID: id,
		StartAt:       start,
		Actor:         actorFor(c, req.Actor),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), appointment.UpdateDetailsInput{
		AppointmentID: id,
		Notes:         req.Notes,
		FinalPrice:    req.FinalPrice,
		Actor:         actorFor(c, req.Actor),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, ap)
}
