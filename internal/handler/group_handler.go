package handler

import (
	"context"
	"net/http"
	"strconv"

	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type GroupInput struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description" binding:"required"`
	Visibility         string `json:"visibility" binding:"omitempty,oneof=Public Private"`
	ActivityGoal       string `json:"activity_goal" binding:"required"`
	ActivityTypes      string `json:"activity_types" binding:"required"`
	Address            string `json:"address" binding:"required"`
	City               string `json:"city"`
	ZipCode            string `json:"zip_code"`
	AvailableDays      string `json:"available_days" binding:"required"`
	AvailableTimeSlot  string `json:"available_time_slot" binding:"required"`
	MinExperienceLevel string `json:"min_experience_level" binding:"required"`
	MaxMembers         int    `json:"max_members" binding:"required,min=2,max=100"`
}

type GroupResponse struct {
	ID                 uint               `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Visibility         string             `json:"visibility"`
	ActivityGoal       string             `json:"activity_goal"`
	ActivityTypes      string             `json:"activity_types"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	ZipCode            string             `json:"zip_code"`
	AvailableDays      string             `json:"available_days"`
	AvailableTimeSlot  string             `json:"available_time_slot"`
	MinExperienceLevel string             `json:"min_experience_level"`
	MaxMembers         int                `json:"max_members"`
	MembersCount       int                `json:"members_count"`
	Organizer          PublicUserResponse `json:"organizer"`
}

func newGroupResponse(ctx context.Context, group models.Group, viewerID uint) GroupResponse {
	return GroupResponse{
		ID:                 group.ID,
		Name:               group.Name,
		Description:        group.Description,
		Visibility:         group.Visibility,
		ActivityGoal:       group.ActivityGoal,
		ActivityTypes:      group.ActivityTypes,
		Address:            group.Address,
		City:               group.City,
		ZipCode:            group.ZipCode,
		AvailableDays:      group.AvailableDays,
		AvailableTimeSlot:  group.AvailableTimeSlot,
		MinExperienceLevel: group.MinExperienceLevel,
		MaxMembers:         group.MaxMembers,
		MembersCount:       group.MembersCount,
		Organizer:          buildPublicUserResponse(ctx, group.Organizer, viewerID),
	}
}

// endregion

// CreateGroup godoc
// @Summary      Create a fitness group
// @Description  Creates a group with the authenticated user as organizer and first member.
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body GroupInput true "Group Info"
// @Success      201 {object} GroupResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse "Group name already exists"
// @Router       /groups [post]
func CreateGroup(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.Group
	if err := database.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Group already exists"})
		return
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = "Private"
	}

	group := models.Group{
		Name:               input.Name,
		OrganizerID:        userID.(uint),
		Description:        sanitizer.Sanitize(input.Description),
		Visibility:         visibility,
		ActivityGoal:       input.ActivityGoal,
		ActivityTypes:      input.ActivityTypes,
		Address:            input.Address,
		City:               input.City,
		ZipCode:            input.ZipCode,
		AvailableDays:      input.AvailableDays,
		AvailableTimeSlot:  input.AvailableTimeSlot,
		MinExperienceLevel: input.MinExperienceLevel,
		MaxMembers:         input.MaxMembers,
		MembersCount:       1,
	}

	// Group creation and organizer membership commit together.
	tx := database.DB.Begin()

	if err := tx.Create(&group).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	var organizer models.User
	if err := tx.First(&organizer, userID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Organizer not found"})
		return
	}
	if err := tx.Model(&group).Association("Members").Append(&organizer); err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add organizer as member"})
		return
	}

	tx.Commit()

	ctx, cancel := requestContext(c)
	defer cancel()

	database.DB.Preload("Organizer").First(&group, group.ID)
	c.JSON(http.StatusCreated, newGroupResponse(ctx, group, userID.(uint)))
}

// SearchGroups godoc
// @Summary      Search fitness groups
// @Description  Gets a paginated list of groups, optionally filtered by city or activity goal. Anonymous viewers see public groups only; an authenticated organizer also sees their own private groups.
// @Tags         groups
// @Produce      json
// @Param        city  query string false "Filter by city"
// @Param        goal  query string false "Filter by activity goal"
// @Param        page  query int    false "Page number" default(1)
// @Param        limit query int    false "Items per page" default(10)
// @Success      200 {object} PaginatedResponse[GroupResponse]
// @Router       /groups [get]
func SearchGroups(c *gin.Context) {
	// Search is open: the viewer is set only when a valid token was sent.
	var viewerID uint
	if v, ok := c.Get("userID"); ok {
		viewerID = v.(uint)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := database.DB.
		Preload("Organizer").
		Where("visibility = ? OR organizer_id = ?", "Public", viewerID).
		Order("created_at DESC")

	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if goal := c.Query("goal"); goal != "" {
		query = query.Where("activity_goal = ?", goal)
	}

	groups, totalItems, err := Paginate[models.Group](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve groups"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	response := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		response = append(response, newGroupResponse(ctx, group, viewerID))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(response, totalItems, page, limit))
}

// GetGroupByID godoc
// @Summary      Get a group by ID
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {object} GroupResponse
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id} [get]
func GetGroupByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var group models.Group
	if err := database.DB.Preload("Organizer").First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, newGroupResponse(ctx, group, viewerID.(uint)))
}

// UpdateGroup godoc
// @Summary      Update a group (organizer only)
// @Tags         groups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int        true "Group ID"
// @Param        input body GroupInput true "New Group Info"
// @Success      200 {object} GroupResponse
// @Failure      403 {object} ErrorResponse "Only the organizer can update the group"
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id} [put]
func UpdateGroup(c *gin.Context) {
	userID, _ := c.Get("userID")
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if group.OrganizerID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can update the group"})
		return
	}

	var input GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != group.Name {
		var conflict models.Group
		if err := database.DB.Where("name = ? AND id <> ?", input.Name, group.ID).First(&conflict).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Group name already exists"})
			return
		}
	}
	if input.MaxMembers < group.MembersCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_members cannot be below the current member count"})
		return
	}

	group.Name = input.Name
	group.Description = sanitizer.Sanitize(input.Description)
	if input.Visibility != "" {
		group.Visibility = input.Visibility
	}
	group.ActivityGoal = input.ActivityGoal
	group.ActivityTypes = input.ActivityTypes
	group.Address = input.Address
	group.City = input.City
	group.ZipCode = input.ZipCode
	group.AvailableDays = input.AvailableDays
	group.AvailableTimeSlot = input.AvailableTimeSlot
	group.MinExperienceLevel = input.MinExperienceLevel
	group.MaxMembers = input.MaxMembers

	database.DB.Save(&group)

	ctx, cancel := requestContext(c)
	defer cancel()

	database.DB.Preload("Organizer").First(&group, group.ID)
	c.JSON(http.StatusOK, newGroupResponse(ctx, group, userID.(uint)))
}

// GetGroupMembers godoc
// @Summary      List group members
// @Tags         groups
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Group ID"
// @Success      200 {array} PublicUserResponse
// @Failure      404 {object} ErrorResponse "Group not found"
// @Router       /groups/{id}/members [get]
func GetGroupMembers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var group models.Group
	if err := database.DB.Preload("Members").First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	members := make([]PublicUserResponse, 0, len(group.Members))
	for _, member := range group.Members {
		members = append(members, buildPublicUserResponse(ctx, *member, viewerID.(uint)))
	}
	c.JSON(http.StatusOK, members)
}
