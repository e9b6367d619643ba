package main

import (
	"net/http"
	"time"

	"fitmatch/backend/internal/auth"
	"fitmatch/backend/internal/config"
	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/handler"
	"fitmatch/backend/pkg/logger"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "fitmatch/backend/docs"
)

func init() {
	config.LoadConfig()
	logger.Init(config.AppConfig.LogLevel)
}

// @title           Fitmatch API
// @version         1.0
// @description     Social fitness-matching service: buddy and group-join requests, chat, profiles.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	defer logger.Sync()

	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/:id", handler.GetUserByID)
		}

		// Relationship routes (protected): buddy and group-join requests
		relationRoutes := apiV1.Group("/relationships")
		relationRoutes.Use(auth.AuthMiddleware())
		{
			relationRoutes.POST("", handler.CreateRelationship)
			relationRoutes.GET("", handler.GetRelationships)
			relationRoutes.GET("/status", handler.GetRelationshipStatus)
			relationRoutes.GET("/pending", handler.GetPendingRelationships)
			relationRoutes.POST("/undo", handler.UndoRelationship)
			relationRoutes.POST("/:id/approve", handler.ApproveRelationship)
			relationRoutes.POST("/:id/reject", handler.RejectRelationship)
		}

		// Group search is public; an optional token widens it to the
		// viewer's own private groups.
		apiV1.GET("/groups", auth.OptionalAuthMiddleware(), handler.SearchGroups)

		// Group routes (protected)
		groupRoutes := apiV1.Group("/groups")
		groupRoutes.Use(auth.AuthMiddleware())
		{
			groupRoutes.POST("", handler.CreateGroup)
			groupRoutes.GET("/:id", handler.GetGroupByID)
			groupRoutes.GET("/:id/members", handler.GetGroupMembers)
			groupRoutes.PUT("/:id", handler.UpdateGroup)
		}

		// Message routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", handler.SendMessage)
			messageRoutes.GET("/conversation", handler.GetConversation)
		}

		// Event stream (protected). No write timeout: SSE connections are
		// long-lived.
		apiV1.GET("/events/stream", auth.AuthMiddleware(), handler.StreamEvents)
	}

	server := &http.Server{
		Addr:              ":" + config.AppConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("server starting", "port", config.AppConfig.Port)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
