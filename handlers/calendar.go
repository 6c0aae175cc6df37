package handlers

import (
	"net/http"
	"time"

	"folio/services/calendar"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler proxies read access to the calendar backend.
type CalendarHandler struct {
	client calendar.Client
	logger *zap.Logger
}

func NewCalendarHandler(client calendar.Client, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{client: client, logger: logger}
}

// ListEvents processes GET /api/calendar/events?from=&to=.
// The range defaults to the coming week.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	now := time.Now()
	from, to := now, now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'from' value", "Expected RFC 3339 timestamp.")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'to' value", "Expected RFC 3339 timestamp.")
			return
		}
		to = parsed
	}

	events, err := h.client.ListEvents(c.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list calendar events", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Calendar service unavailable", "Please try again later.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
