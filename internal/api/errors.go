package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/middleware"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
)

var errUnauthorized = errors.New("unauthorized")

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var persistErr *service.PersistError
	switch {
	case errors.As(err, &persistErr):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":    "diet plan generated but could not be saved",
			"draft_id": persistErr.DraftID,
			"plan":     persistErr.Plan,
		})
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyPlan):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func practitionerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.PractitionerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized.Error()})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func indexParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}

// versionQuery reads the optional ?version= guard.
func versionQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("version")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid version"})
		return nil, false
	}
	return &v, true
}
