package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/internal/domain/utils/calendar"
	"github.com/studyhive/studyhive-backend/internal/domain/utils/validator"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

type EventHandler struct {
	events *service.EventService
	logger *logger.Logger
}

func NewEventHandler(events *service.EventService, log *logger.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: log,
	}
}

type createEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Tags        []string `json:"tags"`
}

// POST /planner/events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if !validator.EventTitle(req.Title) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid title"})
		return
	}
	if !validator.EventDescription(req.Description) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description too long"})
		return
	}
	deadline, ok := validator.EventDeadline(req.Deadline)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use ISO-8601 with offset)"})
		return
	}

	event, err := h.events.Create(c.Request.Context(), &entity.Event{
		UserID:      userID(c),
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Deadline:    deadline,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"eventId": event.ID})
}

// GET /planner/events?from=...&to=...
func (h *EventHandler) List(c *gin.Context) {
	var from, to time.Time
	if s := c.Query("from"); s != "" {
		if t, ok := validator.EventDeadline(s); ok {
			from = t
		}
	}
	if s := c.Query("to"); s != "" {
		if t, ok := validator.EventDeadline(s); ok {
			to = t
		}
	}

	events, err := h.events.GetByUser(c.Request.Context(), userID(c), from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, gin.H{
			"id":          e.ID,
			"title":       e.Title,
			"description": e.Description,
			"tags":        []string(e.Tags),
			"deadline":    e.Deadline.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /planner/events/export
func (h *EventHandler) Export(c *gin.Context) {
	events, err := h.events.GetByUser(c.Request.Context(), userID(c), time.Time{}, time.Time{})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	ics, err := calendar.ExportEventsToICS(events)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="deadlines.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", ics)
}

// DELETE /planner/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
