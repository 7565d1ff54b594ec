package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/chronology"
	"github.com/applytrail/applytrail/internal/httputil"
	"github.com/applytrail/applytrail/internal/metrics"
	"github.com/applytrail/applytrail/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeInvalidReference = "invalid_reference"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternalError    = "internal_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeValidationError  = "validation_error"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// notFoundErrors are the lookup failures reported as 404 when they concern
// the entity addressed by the request path.
var notFoundErrors = []error{
	models.ErrUserNotFound,
	models.ErrCompanyNotFound,
	models.ErrRoleNotFound,
	models.ErrApplicationNotFound,
	models.ErrStageNotFound,
	models.ErrTaskNotFound,
}

func isNotFound(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// respondServiceError maps an error returned by a service to an HTTP
// response. Unknown errors are logged and reported as 500.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, op string) {
	var violation *chronology.Violation

	switch {
	case errors.As(err, &violation):
		respondError(c, http.StatusBadRequest, strings.ToLower(string(violation.Code)), violation.Message)
	case isNotFound(err):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, "already exists")
	default:
		log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

type validatable interface {
	Validate() error
}

// bindJSON decodes the request body into req and runs its Validate method.
// It writes the error response and returns false on failure.
func bindJSON(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return false
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return false
	}

	return true
}
