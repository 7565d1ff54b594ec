package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// SessionHandler serves anonymous session and current-user endpoints.
type SessionHandler struct {
	svc SessionRepository
	log *logrus.Logger
}

// NewSessionHandler creates a SessionHandler with the given dependencies.
func NewSessionHandler(svc SessionRepository, log *logrus.Logger) *SessionHandler {
	return &SessionHandler{svc: svc, log: log}
}

// CreateAnonymous handles POST /api/v1/sessions/anonymous. The body is optional.
func (h *SessionHandler) CreateAnonymous(c *gin.Context) {
	var req models.CreateSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	session, err := h.svc.CreateAnonymousSession(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating session")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "session.create",
		"user_id": session.User.ID.String(),
	}).Info("audit")

	c.JSON(http.StatusCreated, session)
}

// Me handles GET /api/v1/me.
func (h *SessionHandler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.log, err, "getting user")
		return
	}

	c.JSON(http.StatusOK, user)
}
