package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fitmatch/backend/internal/auth"
	"fitmatch/backend/internal/config"
	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/models"
	"fitmatch/backend/pkg/jwt"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		JWTSecret:             "test-secret",
		TokenTTLHours:         1,
		RequestTimeoutSeconds: 5,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open db")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db), "migrate")
	database.DB = db

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/register", RegisterUser)
	authRoutes.POST("/login", LoginUser)

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	userRoutes.GET("", SearchUsers)
	userRoutes.GET("/me", GetMe)
	userRoutes.GET("/:id", GetUserByID)

	relationRoutes := apiV1.Group("/relationships")
	relationRoutes.Use(auth.AuthMiddleware())
	relationRoutes.POST("", CreateRelationship)
	relationRoutes.GET("", GetRelationships)
	relationRoutes.GET("/status", GetRelationshipStatus)
	relationRoutes.GET("/pending", GetPendingRelationships)
	relationRoutes.POST("/undo", UndoRelationship)
	relationRoutes.POST("/:id/approve", ApproveRelationship)
	relationRoutes.POST("/:id/reject", RejectRelationship)

	apiV1.GET("/groups", auth.OptionalAuthMiddleware(), SearchGroups)
	groupRoutes := apiV1.Group("/groups")
	groupRoutes.Use(auth.AuthMiddleware())
	groupRoutes.POST("", CreateGroup)
	groupRoutes.GET("/:id", GetGroupByID)
	groupRoutes.GET("/:id/members", GetGroupMembers)
	groupRoutes.PUT("/:id", UpdateGroup)

	messageRoutes := apiV1.Group("/messages")
	messageRoutes.Use(auth.AuthMiddleware())
	messageRoutes.POST("", SendMessage)
	messageRoutes.GET("/conversation", GetConversation)

	return router
}

func createTestUser(t *testing.T, username string) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: "x",
		AllowChat:    true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRelation(t *testing.T, w *httptest.ResponseRecorder) RelationResponse {
	t.Helper()
	var rel RelationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rel))
	return rel
}

func TestRegisterAndLogin(t *testing.T) {
	router := setupTestRouter(t)

	register := map[string]interface{}{
		"username":  "runner1",
		"email":     "runner1@example.com",
		"full_name": "Runner One",
		"password":  "password123",
	}
	w := doRequest(router, http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same username again conflicts.
	w = doRequest(router, http.MethodPost, "/api/v1/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login": "runner1", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var loginBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	assert.NotEmpty(t, loginBody["token"])

	w = doRequest(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"login": "runner1", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRelationshipsRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/relationships?targetId=2", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuddyRequestLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	u1, token1 := createTestUser(t, "alice")
	u2, token2 := createTestUser(t, "bob")

	// Send the request.
	w := doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u2.ID), token1, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rel := decodeRelation(t, w)
	assert.Equal(t, models.StatusPending, rel.Status)
	assert.Equal(t, u1.ID, rel.SubjectID)

	// Duplicate request conflicts, from either side.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u2.ID), token1, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u1.ID), token2, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Status is direction-agnostic.
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/relationships/status?targetId=%d", u2.ID), token1, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/relationships/status?targetId=%d", u1.ID), token2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statusBody map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusBody))
	assert.Equal(t, "pending", statusBody["status"])

	// The subject cannot approve their own request.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), token1, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The target approves.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), token2, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.StatusAccepted, decodeRelation(t, w).Status)

	// Approving again is a conflict; unknown ids are not found.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), token2, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doRequest(router, http.MethodPost, "/api/v1/relationships/99999/approve", token2, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUndoAndRerequest(t *testing.T) {
	router := setupTestRouter(t)
	_, token1 := createTestUser(t, "alice")
	u2, _ := createTestUser(t, "bob")

	w := doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u2.ID), token1, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/relationships/undo", token1, UndoInput{TargetID: u2.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// No active relationship left: status reports 404.
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/relationships/status?targetId=%d", u2.ID), token1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Undoing again finds nothing.
	w = doRequest(router, http.MethodPost, "/api/v1/relationships/undo", token1, UndoInput{TargetID: u2.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A fresh cycle starts cleanly.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u2.ID), token1, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.StatusPending, decodeRelation(t, w).Status)
}

func TestGroupJoinFlow(t *testing.T) {
	router := setupTestRouter(t)
	_, organizerToken := createTestUser(t, "organizer")
	_, joinerToken := createTestUser(t, "joiner")

	w := doRequest(router, http.MethodPost, "/api/v1/groups", organizerToken, GroupInput{
		Name:               "Morning Runners",
		Description:        "Early runs in the park",
		Visibility:         "Public",
		ActivityGoal:       "Endurance",
		ActivityTypes:      "Running",
		Address:            "Central Park",
		AvailableDays:      "Weekdays",
		AvailableTimeSlot:  "Morning",
		MinExperienceLevel: "Beginner",
		MaxMembers:         5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var group GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))
	assert.Equal(t, 1, group.MembersCount)

	// Joiner asks to join.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d&kind=group", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rel := decodeRelation(t, w)

	// The request shows up in the organizer's pending view, not the joiner's.
	w = doRequest(router, http.MethodGet, "/api/v1/relationships/pending", organizerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var pending []RelationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, rel.ID, pending[0].ID)

	w = doRequest(router, http.MethodGet, "/api/v1/relationships/pending", joinerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	assert.Empty(t, pending)

	// Only the organizer may approve.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), joinerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/approve", rel.ID), organizerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Membership side effects landed with the approve.
	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%d", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))
	assert.Equal(t, 2, group.MembersCount)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/groups/%d/members", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []PublicUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	assert.Len(t, members, 2)
}

func TestGroupRejectThenRerequest(t *testing.T) {
	router := setupTestRouter(t)
	_, organizerToken := createTestUser(t, "organizer")
	_, joinerToken := createTestUser(t, "joiner")

	w := doRequest(router, http.MethodPost, "/api/v1/groups", organizerToken, GroupInput{
		Name:               "Lifters",
		Description:        "Strength training",
		ActivityGoal:       "MuscleGain",
		ActivityTypes:      "Weightlifting",
		Address:            "Iron Gym",
		AvailableDays:      "MWF",
		AvailableTimeSlot:  "Evening",
		MinExperienceLevel: "Intermediate",
		MaxMembers:         10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var group GroupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d&kind=group", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	rel := decodeRelation(t, w)

	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships/%d/reject", rel.ID), organizerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/relationships/status?targetId=%d&kind=group", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statusBody map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statusBody))
	assert.Equal(t, "rejected", statusBody["status"])

	// The prior rejection does not block a new cycle.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d&kind=group", group.ID), joinerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.StatusPending, decodeRelation(t, w).Status)
}

func TestCreateRelationshipValidation(t *testing.T) {
	router := setupTestRouter(t)
	u1, token1 := createTestUser(t, "alice")

	// Missing target.
	w := doRequest(router, http.MethodPost, "/api/v1/relationships", token1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Self request.
	w = doRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/relationships?targetId=%d", u1.ID), token1, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown target user.
	w = doRequest(router, http.MethodPost, "/api/v1/relationships?targetId=99999", token1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
