package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/logs"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const testSecret = "test-secret"

var salonZone = time.FixedZone("BRT", -3*60*60)

type api struct {
	t          *testing.T
	r          *gin.Engine
	dispatcher *audit.Dispatcher
}

// newAPI serves the full router over an in-memory database. "Now" is
// Monday 2025-06-02 08:00 in the salon.
func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	log := logs.Discard()

	dispatcher := audit.NewDispatcher(log, audit.New(db))
	t.Cleanup(dispatcher.Close)

	r := gin.New()
	RegisterRoutes(r, db, &config.Config{JWTSecret: testSecret}, Deps{
		Log:   log,
		Clock: timezone.FixedClock{T: time.Date(2025, 6, 2, 8, 0, 0, 0, salonZone)},
		Audit: dispatcher,
	})

	return &api{t: t, r: r, dispatcher: dispatcher}
}

func (a *api) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rw := httptest.NewRecorder()
	a.r.ServeHTTP(rw, req)
	return rw
}

func (a *api) expect(rw *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if rw.Code != status {
		a.t.Fatalf("expected %d, got %d: %s", status, rw.Code, rw.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rw.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode response: %v", err)
		}
	}
}

func (a *api) expectError(rw *httptest.ResponseRecorder, status int, code string) {
	a.t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	a.expect(rw, status, &body)
	if body.Code != code {
		a.t.Fatalf("expected error %q, got %q", code, body.Code)
	}
}

type idResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

type salon struct {
	clientID, professionalID, serviceID uint
}

// seed creates a Monday-to-Saturday 08:00-18:00 professional through the
// catalog endpoints.
func (a *api) seed() salon {
	a.t.Helper()

	var svc, pro, client idResponse
	a.expect(a.do(http.MethodPost, "/api/services", gin.H{
		"name":     "Manicure",
		"category": "nails",
		"price":    "35.00",
	}, ""), http.StatusCreated, &svc)

	a.expect(a.do(http.MethodPost, "/api/professionals", gin.H{
		"name":        "Bia",
		"service_ids": []uint{svc.ID},
	}, ""), http.StatusCreated, &pro)

	a.expect(a.do(http.MethodPost, "/api/clients", gin.H{
		"name":  "Carla",
		"phone": "(11) 98888-7777",
		"email": "carla@example.com",
	}, ""), http.StatusCreated, &client)

	return salon{clientID: client.ID, professionalID: pro.ID, serviceID: svc.ID}
}

func (a *api) book(s salon, date, hm string) idResponse {
	a.t.Helper()
	var ap idResponse
	a.expect(a.do(http.MethodPost, "/api/appointments", gin.H{
		"client_id":       s.clientID,
		"professional_id": s.professionalID,
		"service_id":      s.serviceID,
		"date":            date,
		"time":            hm,
	}, ""), http.StatusCreated, &ap)
	return ap
}

func (a *api) slots(s salon, date string) []string {
	a.t.Helper()
	var body struct {
		Slots []string `json:"slots"`
	}
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/availability?professional_id=%d&date=%s", s.professionalID, date),
		nil, ""), http.StatusOK, &body)
	return body.Slots
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ======================================================
// Tests
// ======================================================

func TestHealth(t *testing.T) {
	a := newAPI(t)
	rw := a.do(http.MethodGet, "/health", nil, "")
	a.expect(rw, http.StatusOK, nil)
	if rw.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestAvailability_DefaultScheduleAndBooking(t *testing.T) {
	a := newAPI(t)
	s := a.seed()

	slots := a.slots(s, "2025-06-03")
	if len(slots) != 10 || slots[0] != "08:00" || slots[9] != "17:00" {
		t.Fatalf("unexpected default slots %v", slots)
	}

	a.book(s, "2025-06-03", "10:00")

	slots = a.slots(s, "2025-06-03")
	if len(slots) != 9 || contains(slots, "10:00") {
		t.Fatalf("booked slot still offered: %v", slots)
	}

	// Sunday is outside the default working days.
	if got := a.slots(s, "2025-06-08"); len(got) != 0 {
		t.Fatalf("expected no sunday slots, got %v", got)
	}

	var alias struct {
		Slots []string `json:"slots"`
	}
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/available-times?professional_id=%d&date=2025-06-03", s.professionalID),
		nil, ""), http.StatusOK, &alias)
	if len(alias.Slots) != 9 {
		t.Fatalf("alias route disagrees: %v", alias.Slots)
	}
}

func TestAvailability_BadRequests(t *testing.T) {
	a := newAPI(t)
	s := a.seed()

	a.expectError(a.do(http.MethodGet, "/api/availability?date=2025-06-03", nil, ""),
		http.StatusBadRequest, "invalid_request")
	a.expectError(a.do(http.MethodGet,
		fmt.Sprintf("/api/availability?professional_id=%d&date=03/06/2025", s.professionalID), nil, ""),
		http.StatusBadRequest, "invalid_date")
	a.expectError(a.do(http.MethodGet, "/api/availability?professional_id=999&date=2025-06-03", nil, ""),
		http.StatusNotFound, "professional_not_found")
}

func TestCreateAppointment_Rejections(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	a.book(s, "2025-06-03", "10:00")

	cases := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"taken", gin.H{"date": "2025-06-03", "time": "10:00"}, http.StatusUnprocessableEntity, "slot_taken"},
		{"sunday", gin.H{"date": "2025-06-08", "time": "10:00"}, http.StatusUnprocessableEntity, "non_working_day"},
		{"too early", gin.H{"date": "2025-06-03", "time": "07:00"}, http.StatusUnprocessableEntity, "outside_working_hours"},
		{"half hour", gin.H{"date": "2025-06-03", "time": "10:30"}, http.StatusUnprocessableEntity, "not_whole_hour"},
		{"past", gin.H{"date": "2025-05-30", "time": "10:00"}, http.StatusUnprocessableEntity, "in_past"},
		{"bad time", gin.H{"date": "2025-06-03", "time": "ten"}, http.StatusBadRequest, "invalid_date_or_time"},
	}

	for _, tc := range cases {
		body := gin.H{
			"client_id":       s.clientID,
			"professional_id": s.professionalID,
			"service_id":      s.serviceID,
		}
		for k, v := range tc.body {
			body[k] = v
		}
		t.Logf("case %s", tc.name)
		a.expectError(a.do(http.MethodPost, "/api/appointments", body, ""), tc.status, tc.code)
	}

	a.expectError(a.do(http.MethodPost, "/api/appointments", gin.H{
		"client_id":       999,
		"professional_id": s.professionalID,
		"service_id":      s.serviceID,
		"date":            "2025-06-04",
		"time":            "10:00",
	}, ""), http.StatusNotFound, "client_not_found")

	a.expectError(a.do(http.MethodPost, "/api/appointments", gin.H{"date": "2025-06-04"}, ""),
		http.StatusBadRequest, "invalid_request")
}

func TestStatusFlow_HistoryRecordsTokenActor(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	ap := a.book(s, "2025-06-03", "09:00")

	token := signToken(t, jwt.MapClaims{"name": "Reception", "sub": "user-7"})

	var out idResponse
	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/confirm", ap.ID), nil, token),
		http.StatusOK, &out)
	if out.Status != "CONFIRMED" {
		t.Fatalf("expected CONFIRMED, got %s", out.Status)
	}

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/status", ap.ID),
		gin.H{"status": "in_progress", "actor": "ignored"}, token), http.StatusOK, &out)
	if out.Status != "IN_PROGRESS" {
		t.Fatalf("expected IN_PROGRESS, got %s", out.Status)
	}

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/no-show", ap.ID), nil, ""),
		http.StatusUnprocessableEntity, "invalid_transition")

	var history struct {
		Data []struct {
			Action string `json:"action"`
			Actor  string `json:"actor"`
		} `json:"data"`
		Total int `json:"total"`
	}
	a.expect(a.do(http.MethodGet, fmt.Sprintf("/api/appointments/%d/history", ap.ID), nil, ""),
		http.StatusOK, &history)

	if history.Total != 3 {
		t.Fatalf("expected 3 history entries, got %d", history.Total)
	}
	if history.Data[0].Action != "STATUS_CHANGED" || history.Data[0].Actor != "Reception" {
		t.Fatalf("unexpected newest entry %+v", history.Data[0])
	}
	if history.Data[2].Action != "CREATED" || history.Data[2].Actor != "system" {
		t.Fatalf("unexpected oldest entry %+v", history.Data[2])
	}
}

func TestCancel_ReleasesSlot(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	ap := a.book(s, "2025-06-03", "11:00")

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID),
		gin.H{"actor": "Carla"}, ""), http.StatusOK, nil)

	if !contains(a.slots(s, "2025-06-03"), "11:00") {
		t.Fatalf("canceled slot must be offered again")
	}
	a.book(s, "2025-06-03", "11:00")

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), nil, ""),
		http.StatusUnprocessableEntity, "invalid_transition")
}

func TestReschedule(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	first := a.book(s, "2025-06-03", "09:00")
	a.book(s, "2025-06-03", "10:00")

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/reschedule", first.ID),
		gin.H{"date": "2025-06-03", "time": "10:00"}, ""), http.StatusUnprocessableEntity, "slot_taken")

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/reschedule", first.ID),
		gin.H{"date": "2025-06-04", "time": "15:00"}, ""), http.StatusOK, nil)

	slots := a.slots(s, "2025-06-03")
	if !contains(slots, "09:00") {
		t.Fatalf("old slot must be released: %v", slots)
	}
	if contains(a.slots(s, "2025-06-04"), "15:00") {
		t.Fatalf("new slot must be taken")
	}
}

func TestUpdateDetails(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	ap := a.book(s, "2025-06-03", "09:00")

	var out struct {
		Notes      string `json:"notes"`
		FinalPrice string `json:"final_price"`
	}
	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d", ap.ID),
		gin.H{"notes": "gel polish", "final_price": "40.00"}, ""), http.StatusOK, &out)
	if out.Notes != "gel polish" || out.FinalPrice != "40" {
		t.Fatalf("unexpected details %+v", out)
	}

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d", ap.ID),
		gin.H{"final_price": "0"}, ""), http.StatusUnprocessableEntity, "invalid_price")
}

func TestListAppointments(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	a.book(s, "2025-06-03", "09:00")
	confirmed := a.book(s, "2025-06-03", "14:00")
	a.book(s, "2025-06-10", "09:00")

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/confirm", confirmed.ID), nil, ""),
		http.StatusOK, nil)

	type list struct {
		Data []struct {
			ID   uint   `json:"id"`
			Time string `json:"time"`
		} `json:"data"`
		Total int `json:"total"`
	}

	var day list
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/appointments?professional_id=%d&date=2025-06-03", s.professionalID), nil, ""),
		http.StatusOK, &day)
	if day.Total != 2 || day.Data[0].Time != "09:00" {
		t.Fatalf("unexpected day listing %+v", day)
	}

	var filtered list
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/appointments?professional_id=%d&date=2025-06-03&status=confirmed", s.professionalID), nil, ""),
		http.StatusOK, &filtered)
	if filtered.Total != 1 || filtered.Data[0].ID != confirmed.ID {
		t.Fatalf("unexpected filtered listing %+v", filtered)
	}

	a.expectError(a.do(http.MethodGet, "/api/appointments?status=LATE", nil, ""),
		http.StatusUnprocessableEntity, "invalid_status")

	var month list
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/appointments/month?professional_id=%d&year=2025&month=6", s.professionalID), nil, ""),
		http.StatusOK, &month)
	if month.Total != 3 {
		t.Fatalf("expected 3 appointments in june, got %d", month.Total)
	}

	a.expectError(a.do(http.MethodGet, "/api/appointments/month?month=13", nil, ""),
		http.StatusBadRequest, "invalid_month")
	a.expectError(a.do(http.MethodGet, "/api/appointments/abc", nil, ""),
		http.StatusBadRequest, "invalid_id")
	a.expectError(a.do(http.MethodGet, "/api/appointments/999", nil, ""),
		http.StatusNotFound, "appointment_not_found")
}

func TestProfessionalScheduleUpdate(t *testing.T) {
	a := newAPI(t)
	s := a.seed()

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/professionals/%d", s.professionalID), gin.H{
		"working_start": "10:00",
		"working_end":   "13:00",
		"working_days":  []int{2, 4},
	}, ""), http.StatusOK, nil)

	slots := a.slots(s, "2025-06-03")
	if len(slots) != 3 || slots[0] != "10:00" || slots[2] != "12:00" {
		t.Fatalf("unexpected slots after schedule change: %v", slots)
	}
	if got := a.slots(s, "2025-06-04"); len(got) != 0 {
		t.Fatalf("wednesday is no longer a working day, got %v", got)
	}

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/professionals/%d", s.professionalID), gin.H{
		"working_start": "18:00",
	}, ""), http.StatusUnprocessableEntity, "invalid_professional")

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/professionals/%d", s.professionalID), gin.H{
		"working_days": []int{0},
	}, ""), http.StatusBadRequest, "invalid_working_days")

	a.expectError(a.do(http.MethodPatch, fmt.Sprintf("/api/professionals/%d", s.professionalID), gin.H{
		"working_days": []int{},
	}, ""), http.StatusUnprocessableEntity, "invalid_professional")
}

func TestProfessionalQualifications(t *testing.T) {
	a := newAPI(t)
	s := a.seed()

	var other idResponse
	a.expect(a.do(http.MethodPost, "/api/services", gin.H{
		"name":  "Massage",
		"price": "120.00",
	}, ""), http.StatusCreated, &other)

	body := gin.H{
		"client_id":       s.clientID,
		"professional_id": s.professionalID,
		"service_id":      other.ID,
		"date":            "2025-06-03",
		"time":            "09:00",
	}
	a.expectError(a.do(http.MethodPost, "/api/appointments", body, ""),
		http.StatusUnprocessableEntity, "not_qualified")

	var pro struct {
		Services []idResponse `json:"services"`
	}
	a.expect(a.do(http.MethodPut, fmt.Sprintf("/api/professionals/%d/services", s.professionalID),
		gin.H{"service_ids": []uint{s.serviceID, other.ID}}, ""), http.StatusOK, &pro)
	if len(pro.Services) != 2 {
		t.Fatalf("expected 2 qualifications, got %d", len(pro.Services))
	}

	a.expect(a.do(http.MethodPost, "/api/appointments", body, ""), http.StatusCreated, nil)

	a.expectError(a.do(http.MethodPut, fmt.Sprintf("/api/professionals/%d/services", s.professionalID),
		gin.H{"service_ids": []uint{999}}, ""), http.StatusUnprocessableEntity, "unknown_service")
}

func TestCatalogValidation(t *testing.T) {
	a := newAPI(t)

	a.expectError(a.do(http.MethodPost, "/api/services", gin.H{"name": "Free", "price": "0"}, ""),
		http.StatusUnprocessableEntity, "invalid_service")
	a.expectError(a.do(http.MethodPost, "/api/services", gin.H{"name": "X", "price": "10", "category": "cars"}, ""),
		http.StatusUnprocessableEntity, "invalid_service")
	for _, phone := range []string{"123", "00000000", "(11) 1234-5678"} {
		a.expectError(a.do(http.MethodPost, "/api/clients", gin.H{"name": "Ana", "phone": phone}, ""),
			http.StatusUnprocessableEntity, "invalid_phone")
	}
	a.expectError(a.do(http.MethodPost, "/api/clients", gin.H{"name": "Ana", "phone": "11988887777", "email": "ana@"}, ""),
		http.StatusUnprocessableEntity, "invalid_email")
	a.expectError(a.do(http.MethodGet, "/api/clients/42", nil, ""),
		http.StatusNotFound, "client_not_found")

	s := a.seed()

	a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/clients/%d", s.clientID), gin.H{"active": false}, ""),
		http.StatusOK, nil)

	var active struct {
		Total int `json:"total"`
	}
	a.expect(a.do(http.MethodGet, "/api/clients?active=true", nil, ""), http.StatusOK, &active)
	if active.Total != 0 {
		t.Fatalf("inactive client listed as active")
	}

	a.expectError(a.do(http.MethodPost, "/api/appointments", gin.H{
		"client_id":       s.clientID,
		"professional_id": s.professionalID,
		"service_id":      s.serviceID,
		"date":            "2025-06-03",
		"time":            "09:00",
	}, ""), http.StatusNotFound, "client_not_found")
}

func TestReportAndAuditLogs(t *testing.T) {
	a := newAPI(t)
	s := a.seed()
	ap := a.book(s, "2025-06-02", "10:00")

	for _, step := range []string{"confirm", "start", "complete"} {
		a.expect(a.do(http.MethodPatch, fmt.Sprintf("/api/appointments/%d/%s", ap.ID, step), nil, ""),
			http.StatusOK, nil)
	}

	var rep struct {
		Summary struct {
			Count   int    `json:"count"`
			Revenue string `json:"revenue"`
		} `json:"summary"`
	}
	a.expect(a.do(http.MethodGet, "/api/reports/services?from=2025-06-01&to=2025-06-30", nil, ""),
		http.StatusOK, &rep)
	if rep.Summary.Count != 1 || rep.Summary.Revenue != "35" {
		t.Fatalf("unexpected report summary %+v", rep.Summary)
	}

	a.expectError(a.do(http.MethodGet, "/api/reports/services?from=2025-07-01&to=2025-06-01", nil, ""),
		http.StatusUnprocessableEntity, "invalid_period")

	a.dispatcher.Close()

	var logsPage struct {
		Total int64 `json:"total"`
	}
	a.expect(a.do(http.MethodGet,
		fmt.Sprintf("/api/audit-logs?professional_id=%d&action=appointment_status_changed", s.professionalID), nil, ""),
		http.StatusOK, &logsPage)
	if logsPage.Total != 3 {
		t.Fatalf("expected 3 status change logs, got %d", logsPage.Total)
	}
}
