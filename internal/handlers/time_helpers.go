package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, loc)
}

func parseDateTime(loc *time.Location, dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
}

// pathID reads a positive numeric path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional numeric query parameter. Missing means 0.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryBool maps "true"/"false" to a filter; anything else means no filter.
func queryBool(c *gin.Context, name string) *bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// actorFor prefers the authenticated actor over one named in the body.
func actorFor(c *gin.Context, fromBody string) string {
	if actor := middleware.Actor(c); actor != "" {
		return actor
	}
	return strings.TrimSpace(fromBody)
}
