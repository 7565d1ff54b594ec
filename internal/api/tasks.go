package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// TaskHandler serves the authenticated user's tasks.
type TaskHandler struct {
	svc TaskRepository
	log *logrus.Logger
}

// NewTaskHandler creates a TaskHandler with the given dependencies.
func NewTaskHandler(svc TaskRepository, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// List handles GET /api/v1/tasks?completed=&application_id=.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	filter := models.TaskFilter{
		Limit:  parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset: parseOffset(c.DefaultQuery("offset", "0")),
	}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "completed must be a boolean")
			return
		}

		filter.Completed = &completed
	}

	if filter.ApplicationID, ok = parseOptionalID(c, "application_id"); !ok {
		return
	}

	tasks, hasMore, err := h.svc.ListTasks(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, h.log, err, "listing tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "has_more": hasMore})
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req models.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		h.respondTaskError(c, err, "creating task")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "task.create",
		"user_id": userID.String(),
		"task_id": task.ID,
	}).Info("audit")

	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/v1/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.svc.UpdateTask(c.Request.Context(), userID, id, req)
	if err != nil {
		h.respondTaskError(c, err, "updating task")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "task.update",
		"user_id": userID.String(),
		"task_id": id,
	}).Info("audit")

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, h.log, err, "deleting task")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "task.delete",
		"user_id": userID.String(),
		"task_id": id,
	}).Info("audit")

	c.Status(http.StatusNoContent)
}

// respondTaskError reports an application_id in the body that the user does
// not own as a bad reference.
func (h *TaskHandler) respondTaskError(c *gin.Context, err error, op string) {
	if errors.Is(err, models.ErrApplicationNotFound) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidReference, err.Error())
		return
	}

	respondServiceError(c, h.log, err, op)
}
