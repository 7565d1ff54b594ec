package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/models"
)

// maxCompanyPrefix bounds the name prefix accepted by the company search.
const maxCompanyPrefix = 255

// CompanyHandler serves the shared company catalog.
type CompanyHandler struct {
	svc CatalogRepository
	log *logrus.Logger
}

// NewCompanyHandler creates a CompanyHandler with the given dependencies.
func NewCompanyHandler(svc CatalogRepository, log *logrus.Logger) *CompanyHandler {
	return &CompanyHandler{svc: svc, log: log}
}

// List handles GET /api/v1/companies?q=&limit=&offset=.
func (h *CompanyHandler) List(c *gin.Context) {
	prefix := strings.TrimSpace(c.Query("q"))
	if len(prefix) > maxCompanyPrefix {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "q is too long")
		return
	}

	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	companies, hasMore, err := h.svc.ListCompanies(c.Request.Context(), prefix, limit, offset)
	if err != nil {
		respondServiceError(c, h.log, err, "listing companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies, "has_more": hasMore})
}

// Get handles GET /api/v1/companies/:id.
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	company, err := h.svc.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// Create handles POST /api/v1/companies.
func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req models.CreateCompanyRequest
	if !bindJSON(c, &req) {
		return
	}

	company, err := h.svc.CreateCompany(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating company")
		return
	}

	h.log.WithFields(logrus.Fields{
		"action":     "company.create",
		"user_id":    userID.String(),
		"company_id": company.ID,
	}).Info("audit")

	c.JSON(http.StatusCreated, company)
}
