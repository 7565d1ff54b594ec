package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// ApplicationHandler serves the authenticated user's applications.
type ApplicationHandler struct {
	svc ApplicationRepository
	log *logrus.Logger
}

// NewApplicationHandler creates an ApplicationHandler with the given dependencies.
func NewApplicationHandler(svc ApplicationRepository, log *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, log: log}
}

// List handles GET /api/v1/applications.
func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	apps, hasMore, err := h.svc.ListApplications(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err, "listing applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "has_more": hasMore})
}

// Get handles GET /api/v1/applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	app, err := h.svc.GetApplication(c.Request.Context(), userID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting application")
		return
	}

	c.JSON(http.StatusOK, app)
}

// Create handles POST /api/v1/applications. The application and its APPLIED
// stage are stored together.
func (h *ApplicationHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req models.CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.svc.CreateApplication(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, models.ErrRoleNotFound) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidReference, err.Error())
			return
		}

		respondServiceError(c, h.log, err, "creating application")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "application.create",
		"user_id":        userID.String(),
		"application_id": app.ID,
		"role_id":        app.RoleID,
	}).Info("audit")

	c.JSON(http.StatusCreated, app)
}

// Delete handles DELETE /api/v1/applications/:id.
func (h *ApplicationHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteApplication(c.Request.Context(), userID, id); err != nil {
		respondServiceError(c, h.log, err, "deleting application")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "application.delete",
		"user_id":        userID.String(),
		"application_id": id,
	}).Info("audit")

	c.Status(http.StatusNoContent)
}
