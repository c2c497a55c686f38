package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type ClientHandler struct {
	db     *gorm.DB
	emails validators.EmailChecker
	phones validators.PhoneChecker
}

func NewClientHandler(db *gorm.DB, emails validators.EmailChecker, phones validators.PhoneChecker) *ClientHandler {
	return &ClientHandler{db: db, emails: emails, phones: phones}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	Notes     string `json:"notes"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Model(&models.Client{})

	if active := queryBool(c, "active"); active != nil {
		q = q.Where("active = ?", *active)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		respondLookup(c, err, "client")
		return
	}
	httpresp.OK(c, client)
}

// ======================================================
// CREATE / UPDATE
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	client := models.Client{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Address: req.Address,
		Notes:   req.Notes,
		Active:  true,
	}

	if req.BirthDate != "" {
		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "birth_date must be YYYY-MM-DD")
			return
		}
		client.BirthDate = bd
	}

	if !h.validContact(c, &client) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		respondLookup(c, err, "client")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		client.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Active != nil {
		client.Active = *req.Active
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			client.BirthDate = nil
		} else {
			bd, err := parseBirthDate(*req.BirthDate)
			if err != nil {
				httperr.BadRequest(c, "invalid_birth_date", "birth_date must be YYYY-MM-DD")
				return
			}
			client.BirthDate = bd
		}
	}

	if !h.validContact(c, &client) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) validContact(c *gin.Context, client *models.Client) bool {
	if client.Name == "" {
		httperr.Unprocessable(c, "invalid_client", "name is required")
		return false
	}
	if !h.phones.Valid(client.Phone) {
		httperr.Unprocessable(c, "invalid_phone", "phone must have 8 to 15 digits")
		return false
	}
	if !h.emails.Valid(client.Email) {
		httperr.Unprocessable(c, "invalid_email", "email is not valid")
		return false
	}
	return true
}

func parseBirthDate(s string) (*datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}
