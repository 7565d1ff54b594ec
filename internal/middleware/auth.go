package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/auth"
)

// UserIDKey is the gin context key for the authenticated user's id.
const UserIDKey = "user_id"

// TokenVerifier resolves a session token to the user it was issued for.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// AuthMiddleware returns Gin middleware that authenticates requests via a
// Bearer session token. If a BruteForceGuard is provided, failed attempts are
// tracked per client IP.
func AuthMiddleware(verifier TokenVerifier, log *logrus.Logger, guards ...*BruteForceGuard) gin.HandlerFunc {
	var guard *BruteForceGuard
	if len(guards) > 0 {
		guard = guards[0]
	}

	return func(c *gin.Context) {
		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			logAuthFailure(log, c, err)

			if guard != nil {
				guard.RecordFailure(c.ClientIP())
			}

			if errors.Is(err, auth.ErrExpiredToken) {
				respondError(c, http.StatusUnauthorized, "session_expired", "session token has expired")
				return
			}

			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid session token")
			return
		}

		if guard != nil {
			guard.Reset(c.ClientIP())
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// ExtractBearerToken extracts the session token from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// UserID returns the authenticated user's id set by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// logAuthFailure logs a failed authentication attempt.
func logAuthFailure(log *logrus.Logger, c *gin.Context, err error) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
	}).WithError(err).Warn("authentication failed")
}
