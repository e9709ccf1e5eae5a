package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sinnovah/exam-cram/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// currentUserID returns the acting user set by the auth middleware
func currentUserID(c *gin.Context) uint {
	return c.MustGet("user_id").(uint)
}

// bindJSONStrict decodes the request body, rejecting unknown fields so
// a typo in a nested spec surfaces as a validation error instead of
// being silently dropped.
func bindJSONStrict(c *gin.Context, obj interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(obj)
}

// pathID parses the :id route parameter. A malformed id behaves like a
// missing record.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}

// parseIDList parses a comma separated id list query parameter
func parseIDList(value string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// parseAssignedOnly parses the assigned_only query parameter
func parseAssignedOnly(c *gin.Context) bool {
	return c.Query("assigned_only") == "1"
}

// respondError maps service errors to HTTP responses. Unexpected
// errors are logged and never echoed to the client.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Errorf("Unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
