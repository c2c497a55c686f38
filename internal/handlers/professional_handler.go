package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type ProfessionalHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	emails validators.EmailChecker
	phones validators.PhoneChecker
}

func NewProfessionalHandler(db *gorm.DB, dispatcher *audit.Dispatcher, emails validators.EmailChecker, phones validators.PhoneChecker) *ProfessionalHandler {
	return &ProfessionalHandler{db: db, audit: dispatcher, emails: emails, phones: phones}
}

// --------- Requests ---------

type CreateProfessionalRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	WorkingStart string `json:"working_start"` // HH:MM, default 08:00
	WorkingEnd   string `json:"working_end"`   // HH:MM, default 18:00
	WorkingDays  []int  `json:"working_days"`  // ISO weekdays, default Mon-Sat
	ServiceIDs   []uint `json:"service_ids"`
}

type UpdateProfessionalRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	WorkingStart *string `json:"working_start,omitempty"`
	WorkingEnd   *string `json:"working_end,omitempty"`
	WorkingDays  []int   `json:"working_days,omitempty"`
	Active       *bool   `json:"active,omitempty"`
	Actor        string  `json:"actor"`
}

type ReplaceServicesRequest struct {
	ServiceIDs []uint `json:"service_ids"`
	Actor      string `json:"actor"`
}

// ======================================================
// READ
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Professional{})

	if active := queryBool(c, "active"); active != nil {
		q = q.Where("active = ?", *active)
	}
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+query+"%")
	}

	var professionals []models.Professional
	if err := q.Order("name ASC").Find(&professionals).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, professionals)
}

func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.load(c, id)
	if err != nil {
		respondLookup(c, err, "professional")
		return
	}
	httpresp.OK(c, p)
}

// ======================================================
// CREATE
// ======================================================

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p := models.Professional{
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		WorkingStart: models.DefaultWorkingStart,
		WorkingEnd:   models.DefaultWorkingEnd,
		WorkingDays:  schedule.DefaultWorkingDays,
		Active:       true,
	}

	if !h.applySchedule(c, &p, optional(req.WorkingStart), optional(req.WorkingEnd), req.WorkingDays) {
		return
	}
	if !h.validate(c, &p) {
		return
	}

	services, ok := h.findServices(c, req.ServiceIDs)
	if !ok {
		return
	}
	p.Services = services

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, p)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var p models.Professional
	if err := h.db.WithContext(c.Request.Context()).First(&p, id).Error; err != nil {
		respondLookup(c, err, "professional")
		return
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		p.Email = strings.TrimSpace(*req.Email)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	if !h.applySchedule(c, &p, req.WorkingStart, req.WorkingEnd, req.WorkingDays) {
		return
	}
	if !h.validate(c, &p) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("Services").
		Save(&p).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	h.dispatchUpdated(c, &p, req.Actor, gin.H{
		"working_start": schedule.FormatClock(p.OpensAt()),
		"working_end":   schedule.FormatClock(p.ClosesAt()),
		"working_days":  p.WorkingDays,
		"active":        p.Active,
	})

	httpresp.OK(c, p)
}

// ReplaceServices sets the professional's qualifications. Existing
// appointments are not affected.
func (h *ProfessionalHandler) ReplaceServices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ReplaceServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var p models.Professional
	if err := h.db.WithContext(c.Request.Context()).First(&p, id).Error; err != nil {
		respondLookup(c, err, "professional")
		return
	}

	services, ok := h.findServices(c, req.ServiceIDs)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&p).
		Association("Services").
		Replace(services); err != nil {

		httperr.Respond(c, err)
		return
	}

	h.dispatchUpdated(c, &p, req.Actor, gin.H{"service_ids": req.ServiceIDs})

	updated, err := h.load(c, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, updated)
}

// ------ helpers ------

func (h *ProfessionalHandler) load(c *gin.Context, id uint) (*models.Professional, error) {
	var p models.Professional
	err := h.db.WithContext(c.Request.Context()).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("services.name ASC")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *ProfessionalHandler) applySchedule(
	c *gin.Context,
	p *models.Professional,
	start, end *string,
	days []int,
) bool {
	if start != nil {
		d, err := schedule.ParseClock(*start)
		if err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return false
		}
		p.WorkingStart = datatypes.Time(d)
	}
	if end != nil {
		d, err := schedule.ParseClock(*end)
		if err != nil {
			httperr.BadRequest(c, "invalid_working_hours", err.Error())
			return false
		}
		p.WorkingEnd = datatypes.Time(d)
	}
	if days != nil {
		set, err := schedule.NewWeekdaySet(days...)
		if err != nil {
			httperr.BadRequest(c, "invalid_working_days", err.Error())
			return false
		}
		p.WorkingDays = set
	}
	return true
}

func (h *ProfessionalHandler) validate(c *gin.Context, p *models.Professional) bool {
	if err := p.Validate(); err != nil {
		httperr.Unprocessable(c, "invalid_professional", err.Error())
		return false
	}
	if p.Phone != "" && !h.phones.Valid(p.Phone) {
		httperr.Unprocessable(c, "invalid_phone", "phone must have 8 to 15 digits")
		return false
	}
	if !h.emails.Valid(p.Email) {
		httperr.Unprocessable(c, "invalid_email", "email is not valid")
		return false
	}
	return true
}

func (h *ProfessionalHandler) findServices(c *gin.Context, ids []uint) ([]models.Service, bool) {
	if len(ids) == 0 {
		return []models.Service{}, true
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {

		httperr.Respond(c, err)
		return nil, false
	}

	found := make(map[uint]bool, len(services))
	for _, s := range services {
		found[s.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			httperr.Unprocessable(c, "unknown_service", "service not found")
			return nil, false
		}
	}
	return services, true
}

func (h *ProfessionalHandler) dispatchUpdated(c *gin.Context, p *models.Professional, bodyActor string, meta any) {
	id := p.ID
	h.audit.Dispatch(audit.Event{
		Action:         audit.ActionProfessionalUpdated,
		Entity:         "professional",
		EntityID:       &id,
		ProfessionalID: p.ID,
		Actor:          actorFor(c, bodyActor),
		Metadata:       meta,
	})
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
