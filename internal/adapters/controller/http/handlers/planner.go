package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

// PlannerHandler serves the deadline and alert views of the planner.
type PlannerHandler struct {
	events *service.EventService
	alerts *service.AlertService
	logger *logger.Logger
}

func NewPlannerHandler(events *service.EventService, alerts *service.AlertService, log *logger.Logger) *PlannerHandler {
	return &PlannerHandler{
		events: events,
		alerts: alerts,
		logger: log,
	}
}

// GET /planner/upcoming-deadlines
func (h *PlannerHandler) UpcomingDeadlines(c *gin.Context) {
	now := time.Now().UTC()
	events, err := h.events.UpcomingDeadlines(c.Request.Context(), userID(c), now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, gin.H{
			"id":       e.ID,
			"title":    e.Title,
			"deadline": e.Deadline.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /planner/alerts
func (h *PlannerHandler) Alerts(c *gin.Context) {
	now := time.Now().UTC()
	views, err := h.alerts.ListAlerts(c.Request.Context(), userID(c), now)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// POST /planner/alerts/:id/read
func (h *PlannerHandler) MarkAlertRead(c *gin.Context) {
	if err := h.alerts.MarkRead(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
