package handler

import (
	"net/http"
	"time"

	"fitmatch/backend/internal/models"
	"fitmatch/backend/internal/relations"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// RelationResponse is the wire shape of a relationship record.
type RelationResponse struct {
	ID        uint                  `json:"id"`
	Kind      models.RelationKind   `json:"kind"`
	SubjectID uint                  `json:"subject_id"`
	TargetID  uint                  `json:"target_id"`
	Status    models.RelationStatus `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func newRelationResponse(rel *models.Relationship) RelationResponse {
	return RelationResponse{
		ID:        rel.ID,
		Kind:      rel.Kind,
		SubjectID: rel.SubjectID,
		TargetID:  rel.TargetID,
		Status:    rel.Status,
		CreatedAt: rel.CreatedAt,
		UpdatedAt: rel.UpdatedAt,
	}
}

// UndoInput identifies the relationship to withdraw.
type UndoInput struct {
	TargetID uint                `json:"target_id" binding:"required"`
	Kind     models.RelationKind `json:"kind"`
}

// endregion

func relationKind(raw string) models.RelationKind {
	if raw == string(models.KindGroup) {
		return models.KindGroup
	}
	return models.KindBuddy
}

// CreateRelationship godoc
// @Summary      Send a buddy or group-join request
// @Description  Starts a pending request cycle from the authenticated user to the target. Re-opens a rejected or undone cycle; an active request yields 409.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        targetId query int    true  "Target user or group ID"
// @Param        kind     query string false "Request kind (buddy or group)" default(buddy)
// @Success      201 {object} RelationResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "Target not found"
// @Failure      409 {object} ErrorResponse "Active request already exists"
// @Router       /relationships [post]
func CreateRelationship(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	targetID, ok := parseUintQuery(c, "targetId")
	if !ok || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A numeric 'targetId' query parameter is required"})
		return
	}
	kind := relationKind(c.Query("kind"))

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := relationService().Request(ctx, viewerID.(uint), kind, viewerID.(uint), targetID)
	if err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newRelationResponse(rel))
}

// GetRelationshipStatus godoc
// @Summary      Get effective status between two parties
// @Description  Direction-agnostic status lookup used by clients to decide which action to offer. Returns 404 when no relationship exists.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        subjectId query int    false "Subject user ID (defaults to the viewer)"
// @Param        targetId  query int    true  "Target user or group ID"
// @Param        kind      query string false "Request kind (buddy or group)" default(buddy)
// @Success      200 {object} map[string]string "{"status": "pending"}"
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "No relationship exists"
// @Router       /relationships/status [get]
func GetRelationshipStatus(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	subjectID, ok := parseUintQuery(c, "subjectId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subjectId"})
		return
	}
	if subjectID == 0 {
		subjectID = viewerID.(uint)
	}
	targetID, ok := parseUintQuery(c, "targetId")
	if !ok || targetID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A numeric 'targetId' query parameter is required"})
		return
	}
	kind := relationKind(c.Query("kind"))

	ctx, cancel := requestContext(c)
	defer cancel()

	status, rel, err := relationService().EffectiveStatus(ctx, kind, subjectID, targetID)
	if err != nil {
		relationError(c, err)
		return
	}
	// An undone row counts as no relationship, same as a missing one.
	if rel == nil || status == relations.StatusNone {
		c.JSON(http.StatusNotFound, gin.H{"error": "No relationship exists", "status": string(status)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(status), "relationship_id": rel.ID})
}

// ApproveRelationship godoc
// @Summary      Approve a pending request
// @Description  Accepts a pending request. Only the target user (buddy) or group organizer may approve; a non-pending row yields 409. Group approval adds the subject to the member list in the same transaction.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Relationship ID"
// @Success      200 {object} RelationResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /relationships/{id}/approve [post]
func ApproveRelationship(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := relationService().Approve(ctx, viewerID.(uint), id)
	if err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRelationResponse(rel))
}

// RejectRelationship godoc
// @Summary      Reject a pending request
// @Description  Declines a pending request. Same authorization as approve; a non-pending row yields 409.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Relationship ID"
// @Success      200 {object} RelationResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /relationships/{id}/reject [post]
func RejectRelationship(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := relationService().Reject(ctx, viewerID.(uint), id)
	if err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRelationResponse(rel))
}

// UndoRelationship godoc
// @Summary      Withdraw a request or link
// @Description  Resets the viewer's relationship with the target so a new cycle may start. Only the original subject may undo.
// @Tags         relationships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UndoInput true "Pair to undo"
// @Success      200 {object} RelationResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse "No active relationship for the pair"
// @Router       /relationships/undo [post]
func UndoRelationship(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input UndoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind := relationKind(string(input.Kind))

	ctx, cancel := requestContext(c)
	defer cancel()

	rel, err := relationService().Undo(ctx, viewerID.(uint), kind, viewerID.(uint), input.TargetID)
	if err != nil {
		relationError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRelationResponse(rel))
}

// GetPendingRelationships godoc
// @Summary      List pending requests awaiting the viewer
// @Description  Buddy requests targeting the viewer plus join requests for groups the viewer organizes.
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        targetId query int false "Must match the authenticated user when provided"
// @Success      200 {array} RelationResponse
// @Failure      403 {object} ErrorResponse
// @Router       /relationships/pending [get]
func GetPendingRelationships(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	if targetID, ok := parseUintQuery(c, "targetId"); ok && targetID != 0 && targetID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot list pending requests for another user"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	rels, err := relationService().PendingForAuthority(ctx, viewerID.(uint))
	if err != nil {
		relationError(c, err)
		return
	}

	responses := make([]RelationResponse, 0, len(rels))
	for _, rel := range rels {
		responses = append(responses, newRelationResponse(rel))
	}
	c.JSON(http.StatusOK, responses)
}

// GetRelationships godoc
// @Summary      List the viewer's relationships
// @Description  Lists relationships involving the viewer, filtered by status and direction (incoming or outgoing).
// @Tags         relationships
// @Produce      json
// @Security     BearerAuth
// @Param        status    query string false "Filter by status (pending, accepted, rejected, undone)"
// @Param        direction query string false "Filter by direction (incoming, outgoing)"
// @Success      200 {array} RelationResponse
// @Router       /relationships [get]
func GetRelationships(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	status := models.RelationStatus(c.Query("status"))
	direction := c.Query("direction")

	ctx, cancel := requestContext(c)
	defer cancel()

	rels, err := relationService().ListForUser(ctx, viewerID.(uint), status, direction)
	if err != nil {
		relationError(c, err)
		return
	}

	responses := make([]RelationResponse, 0, len(rels))
	for _, rel := range rels {
		responses = append(responses, newRelationResponse(rel))
	}
	c.JSON(http.StatusOK, responses)
}
