package handler

import (
	"context"
	"net/http"
	"strconv"

	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/models"
	"fitmatch/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username           string `json:"username" binding:"required" example:"fitguy42"`
	Email              string `json:"email" binding:"required,email" example:"fit@example.com"`
	FullName           string `json:"full_name" binding:"required" example:"Fit Guy"`
	Password           string `json:"password" binding:"required,min=8" example:"password123"`
	Gender             string `json:"gender"`
	Bio                string `json:"bio"`
	City               string `json:"city"`
	FitnessGoal        string `json:"fitness_goal"`
	WorkoutPreferences string `json:"workout_preferences"`
	AvailableDays      string `json:"available_days"`
	AvailableTimeSlot  string `json:"available_time_slot"`
	ExperienceLevel    string `json:"experience_level"`
	AllowChat          bool   `json:"allow_chat"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"fitguy42"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID                 uint                   `json:"id" example:"1"`
	Username           string                 `json:"username" example:"fitguy42"`
	FullName           string                 `json:"full_name"`
	Bio                string                 `json:"bio,omitempty"`
	City               string                 `json:"city,omitempty"`
	FitnessGoal        string                 `json:"fitness_goal,omitempty"`
	WorkoutPreferences string                 `json:"workout_preferences,omitempty"`
	AvailableDays      string                 `json:"available_days,omitempty"`
	AvailableTimeSlot  string                 `json:"available_time_slot,omitempty"`
	ExperienceLevel    string                 `json:"experience_level,omitempty"`
	AllowChat          bool                   `json:"allow_chat"`
	BuddiesCount       int64                  `json:"buddies_count"`
	RelationToViewer   *models.RelationStatus `json:"relation_to_viewer,omitempty"`
}

// PrivateUserResponse defines the structure for the authenticated user's own profile.
type PrivateUserResponse struct {
	ID            uint   `json:"id" example:"1"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Bio           string `json:"bio,omitempty"`
	City          string `json:"city,omitempty"`
	FitnessGoal   string `json:"fitness_goal,omitempty"`
	BuddiesCount  int64  `json:"buddies_count"`
	PendingCount  int64  `json:"pending_count"`
	OutgoingCount int64  `json:"outgoing_count"`
}

// endregion

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Username, input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:           input.Username,
		Email:              input.Email,
		FullName:           input.FullName,
		PasswordHash:       string(hashedPassword),
		Gender:             input.Gender,
		Bio:                sanitizer.Sanitize(input.Bio),
		City:               input.City,
		FitnessGoal:        input.FitnessGoal,
		WorkoutPreferences: input.WorkoutPreferences,
		AvailableDays:      input.AvailableDays,
		AvailableTimeSlot:  input.AvailableTimeSlot,
		ExperienceLevel:    input.ExperienceLevel,
		AllowChat:          input.AllowChat,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user with username/email and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- User Handlers ---

// SearchUsers godoc
// @Summary      Search for users
// @Description  Searches for users by username, full name, or bio with pagination.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(10)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      401   {object}  ErrorResponse
// @Router       /users [get]
func SearchUsers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	searchQuery := c.Query("q")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := database.DB.Where("id <> ?", viewerID)
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		query = query.Where("username LIKE ? OR full_name LIKE ? OR bio LIKE ?", pattern, pattern, pattern)
	}

	users, totalItems, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	userResponses := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, buildPublicUserResponse(ctx, user, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(userResponses, totalItems, page, limit))
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Description  Retrieves the public profile for a specific user, including the viewer's relationship to them.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  PublicUserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/{id} [get]
func GetUserByID(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if viewerID.(uint) == targetUserID {
		GetMe(c)
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, buildPublicUserResponse(ctx, targetUser, viewerID.(uint)))
}

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, viewerID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	c.JSON(http.StatusOK, buildPrivateUserResponse(ctx, user))
}

// endregion

// region --- Helpers ---

func buddiesCount(ctx context.Context, userID uint) int64 {
	buddies, err := relationStore().ListAcceptedFor(ctx, models.KindBuddy, userID)
	if err != nil {
		return 0
	}
	return int64(len(buddies))
}

func buildPublicUserResponse(ctx context.Context, targetUser models.User, viewerID uint) PublicUserResponse {
	var relationToViewer *models.RelationStatus

	if viewerID != 0 && viewerID != targetUser.ID {
		rel, err := relationStore().FindEitherDirection(ctx, models.KindBuddy, viewerID, targetUser.ID)
		if err == nil && rel.Status != models.StatusUndone {
			relationToViewer = &rel.Status
		}
	}

	return PublicUserResponse{
		ID:                 targetUser.ID,
		Username:           targetUser.Username,
		FullName:           targetUser.FullName,
		Bio:                targetUser.Bio,
		City:               targetUser.City,
		FitnessGoal:        targetUser.FitnessGoal,
		WorkoutPreferences: targetUser.WorkoutPreferences,
		AvailableDays:      targetUser.AvailableDays,
		AvailableTimeSlot:  targetUser.AvailableTimeSlot,
		ExperienceLevel:    targetUser.ExperienceLevel,
		AllowChat:          targetUser.AllowChat,
		BuddiesCount:       buddiesCount(ctx, targetUser.ID),
		RelationToViewer:   relationToViewer,
	}
}

func buildPrivateUserResponse(ctx context.Context, user models.User) PrivateUserResponse {
	var pendingCount, outgoingCount int64
	if incoming, err := relationStore().ListByTarget(ctx, models.KindBuddy, user.ID, models.StatusPending); err == nil {
		pendingCount = int64(len(incoming))
	}
	// Outgoing spans both kinds: the subject's open buddy and join requests.
	if outgoing, err := relationStore().ListBySubject(ctx, "", user.ID, models.StatusPending); err == nil {
		outgoingCount = int64(len(outgoing))
	}

	return PrivateUserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		Bio:           user.Bio,
		City:          user.City,
		FitnessGoal:   user.FitnessGoal,
		BuddiesCount:  buddiesCount(ctx, user.ID),
		PendingCount:  pendingCount,
		OutgoingCount: outgoingCount,
	}
}

// endregion
