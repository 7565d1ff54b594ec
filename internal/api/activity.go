package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// maxEntityTypeLen bounds the entity_type filter.
const maxEntityTypeLen = 50

// ActivityHandler serves the user's activity feed.
type ActivityHandler struct {
	svc ActivityRepository
	log *logrus.Logger
}

// NewActivityHandler creates an ActivityHandler with the given dependencies.
func NewActivityHandler(svc ActivityRepository, log *logrus.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: log}
}

// List handles GET /api/v1/activity?entity_type=&since=&limit=&offset=.
func (h *ActivityHandler) List(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	q := models.ActivityQuery{
		EntityType: c.Query("entity_type"),
		Limit:      parseInt(c.DefaultQuery("limit", "50"), 50),
		Offset:     parseOffset(c.DefaultQuery("offset", "0")),
	}

	if len(q.EntityType) > maxEntityTypeLen {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "entity_type is too long")
		return
	}

	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "since must be an RFC 3339 timestamp")
			return
		}

		q.Since = &since
	}

	entries, hasMore, err := h.svc.ListActivity(c.Request.Context(), userID, q)
	if err != nil {
		respondServiceError(c, h.log, err, "listing activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries, "has_more": hasMore})
}
