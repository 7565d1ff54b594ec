package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// RoleHandler serves the shared role catalog and each role's world view.
type RoleHandler struct {
	svc   CatalogRepository
	world WorldRepository
	log   *logrus.Logger
}

// NewRoleHandler creates a RoleHandler with the given dependencies.
func NewRoleHandler(svc CatalogRepository, world WorldRepository, log *logrus.Logger) *RoleHandler {
	return &RoleHandler{svc: svc, world: world, log: log}
}

// List handles GET /api/v1/roles?company_id=&limit=&offset=.
func (h *RoleHandler) List(c *gin.Context) {
	companyID, ok := parseOptionalID(c, "company_id")
	if !ok {
		return
	}

	var filter int64
	if companyID != nil {
		filter = *companyID
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	roles, hasMore, err := h.svc.ListRoles(c.Request.Context(), filter, limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err, "listing roles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles, "has_more": hasMore})
}

// Get handles GET /api/v1/roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	role, err := h.svc.GetRole(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// Create handles POST /api/v1/roles. An unknown company is a bad reference
// in the body, not a missing resource.
func (h *RoleHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req models.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.svc.CreateRole(c.Request.Context(), userID, req)
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidReference, err.Error())
			return
		}

		respondServiceError(c, h.log, err, "creating role")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":  "role.create",
		"user_id": userID.String(),
		"role_id": role.ID,
	}).Info("audit")

	c.JSON(http.StatusCreated, role)
}

// World handles GET /api/v1/roles/:id/world.
func (h *RoleHandler) World(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.world.World(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "building world graph")
		return
	}

	c.JSON(http.StatusOK, view)
}
