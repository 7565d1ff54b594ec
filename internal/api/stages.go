package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// StageHandler serves the stages of one application. A write that would
// leave the application with an inadmissible chronology is rejected with the
// violation code.
type StageHandler struct {
	svc StageRepository
	log *logrus.Logger
}

// NewStageHandler creates a StageHandler with the given dependencies.
func NewStageHandler(svc StageRepository, log *logrus.Logger) *StageHandler {
	return &StageHandler{svc: svc, log: log}
}

// List handles GET /api/v1/applications/:id/stages.
func (h *StageHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	appID, ok := parseID(c, "id")
	if !ok {
		return
	}

	stages, err := h.svc.ListStages(c.Request.Context(), userID, appID)
	if err != nil {
		respondServiceError(c, h.log, err, "listing stages")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stages": stages})
}

// Create handles POST /api/v1/applications/:id/stages.
func (h *StageHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	appID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req models.StageRequest
	if !bindJSON(c, &req) {
		return
	}

	stage, err := h.svc.CreateStage(c.Request.Context(), userID, appID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating stage")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "stage.create",
		"user_id":        userID.String(),
		"application_id": appID,
		"stage_id":       stage.ID,
		"type":           stage.Type,
	}).Info("audit")

	c.JSON(http.StatusCreated, stage)
}

// Update handles PUT /api/v1/applications/:id/stages/:stage_id.
func (h *StageHandler) Update(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	appID, ok := parseID(c, "id")
	if !ok {
		return
	}

	stageID, ok := parseID(c, "stage_id")
	if !ok {
		return
	}

	var req models.StageRequest
	if !bindJSON(c, &req) {
		return
	}

	stage, err := h.svc.UpdateStage(c.Request.Context(), userID, appID, stageID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating stage")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "stage.update",
		"user_id":        userID.String(),
		"application_id": appID,
		"stage_id":       stageID,
	}).Info("audit")

	c.JSON(http.StatusOK, stage)
}

// Delete handles DELETE /api/v1/applications/:id/stages/:stage_id.
func (h *StageHandler) Delete(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	appID, ok := parseID(c, "id")
	if !ok {
		return
	}

	stageID, ok := parseID(c, "stage_id")
	if !ok {
		return
	}

	if err := h.svc.DeleteStage(c.Request.Context(), userID, appID, stageID); err != nil {
		respondServiceError(c, h.log, err, "deleting stage")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":         "stage.delete",
		"user_id":        userID.String(),
		"application_id": appID,
		"stage_id":       stageID,
	}).Info("audit")

	c.Status(http.StatusNoContent)
}
