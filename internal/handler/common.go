package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"fitmatch/backend/internal/config"
	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/hub"
	"fitmatch/backend/internal/models"
	"fitmatch/backend/internal/relations"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// sanitizer strips all markup from user-provided text before it is stored
// or broadcast.
var sanitizer = bluemonday.StrictPolicy()

// requestContext derives a bounded context for store calls so a stalled
// datastore cannot hold a handler open indefinitely.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), config.AppConfig.RequestTimeout())
}

// relationStore opens the relationship store over the shared database
// connection. Read paths (profile counts, relation-to-viewer lookups) go
// through it directly; write paths go through relationService.
func relationStore() relations.Store {
	return relations.NewStore(database.DB)
}

// relationService builds the request state machine over the shared database
// connection, pushing transitions to the global hub.
func relationService() *relations.Service {
	return relations.NewService(relationStore(), database.DB, publishRelation)
}

func publishRelation(rel *models.Relationship) {
	hub.GlobalHub.Broadcast(hub.RelationTopic(rel.ID), hub.Event{
		Type:    hub.EventRelationUpdate,
		Payload: newRelationResponse(rel),
	})
}

// relationError maps state-machine errors to HTTP responses.
func relationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, relations.ErrValidation), errors.Is(err, relations.ErrSelfRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, relations.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, relations.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, relations.ErrAlreadyRequested),
		errors.Is(err, relations.ErrConflict),
		errors.Is(err, relations.ErrGroupFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(value), true
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
