package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error response from the applytrail API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("applytrail: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("applytrail: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Chronology violation codes returned for rejected stage writes.
var violationCodes = map[string]struct{}{
	"missing_first_stage":       {},
	"more_than_one_first_stage": {},
	"first_stage_out_of_order":  {},
	"more_than_one_final_stage": {},
	"final_stage_out_of_order":  {},
}

func statusOf(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool { return statusOf(err) == 404 }

// IsConflict returns true if the error is a 409 conflict (duplicate key).
func IsConflict(err error) bool { return statusOf(err) == 409 }

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool { return statusOf(err) == 429 }

// IsChronologyViolation returns true if a stage write was rejected because
// the resulting stage set is out of order.
func IsChronologyViolation(err error) bool {
	var e *APIError
	if !errors.As(err, &e) || e.StatusCode != 400 {
		return false
	}
	_, ok := violationCodes[e.Code]
	return ok
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
