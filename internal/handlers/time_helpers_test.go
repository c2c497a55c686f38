package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rw := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rw)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, rw
}

func TestParseDateTime_UsesSalonZone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got, err := parseDateTime(loc, "2025-06-03", "09:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.UTC())
	}

	if _, err := parseDateTime(loc, "2025-06-03", "9h"); err == nil {
		t.Fatalf("expected malformed time to fail")
	}
}

func TestPathID(t *testing.T) {
	c, rw := testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "0"}}

	if _, ok := pathID(c, "id"); ok {
		t.Fatalf("zero id must be rejected")
	}
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rw.Code)
	}

	c, _ = testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	if id, ok := pathID(c, "id"); !ok || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, ok)
	}
}

func TestQueryHelpers(t *testing.T) {
	c, _ := testContext("/?professional_id=4&active=FALSE")

	if id, ok := queryID(c, "professional_id"); !ok || id != 4 {
		t.Fatalf("expected 4, got %d (%v)", id, ok)
	}
	if id, ok := queryID(c, "missing"); !ok || id != 0 {
		t.Fatalf("missing id must mean no filter")
	}

	active := queryBool(c, "active")
	if active == nil || *active {
		t.Fatalf("expected active=false filter")
	}
	if queryBool(c, "other") != nil {
		t.Fatalf("expected no filter")
	}

	bad, rw := testContext("/?professional_id=abc")
	if _, ok := queryID(bad, "professional_id"); ok || rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non numeric id")
	}
}

func TestActorFor_PrefersToken(t *testing.T) {
	c, _ := testContext("/")
	if got := actorFor(c, "  Carla "); got != "Carla" {
		t.Fatalf("expected body actor, got %q", got)
	}

	c.Set(middleware.ContextActor, "Reception")
	if got := actorFor(c, "Carla"); got != "Reception" {
		t.Fatalf("expected token actor, got %q", got)
	}
}
