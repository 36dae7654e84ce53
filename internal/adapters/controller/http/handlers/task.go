package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

type TaskHandler struct {
	tasks  *service.TaskService
	logger *logger.Logger
}

func NewTaskHandler(tasks *service.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  tasks,
		logger: log,
	}
}

type createTaskRequest struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

type patchTaskRequest struct {
	Title   *string `json:"title"`
	Details *string `json:"details"`
	Done    *bool   `json:"done"`
}

// POST /planner/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), &entity.Task{
		UserID:  userID(c),
		Title:   req.Title,
		Details: req.Details,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"taskId": task.ID, "title": task.Title})
}

// GET /planner/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.GetByUser(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, gin.H{
			"id":      t.ID,
			"title":   t.Title,
			"details": t.Details,
			"done":    t.Done,
		})
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /planner/tasks/:id
func (h *TaskHandler) Patch(c *gin.Context) {
	var req patchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if _, err := h.tasks.Patch(c.Request.Context(), userID(c), c.Param("id"), req.Title, req.Details, req.Done); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /planner/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
