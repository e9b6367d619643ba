package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"fitmatch/backend/internal/database"
	"fitmatch/backend/internal/hub"
	"fitmatch/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

type MessageInput struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// ChatPayload is the event body broadcast on a conversation topic.
type ChatPayload struct {
	Sender    uint      `json:"sender"`
	Receiver  uint      `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageResponse struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
}

func newMessageResponse(msg models.Message) MessageResponse {
	return MessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Body:       msg.Body,
		SentAt:     msg.SentAt,
	}
}

// endregion

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Persists the message, then broadcasts it to the conversation room. Persistence and broadcast are separate paths; the broadcast carries no delivery guarantee.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse "Receiver does not allow chat"
// @Failure      404 {object} ErrorResponse "Receiver not found"
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	senderID, _ := c.Get("userID")

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var receiver models.User
	if err := database.DB.First(&receiver, input.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}
	if !receiver.AllowChat {
		c.JSON(http.StatusForbidden, gin.H{"error": "Receiver does not allow chat"})
		return
	}

	msg := models.Message{
		SenderID:   senderID.(uint),
		ReceiverID: receiver.ID,
		Body:       sanitizer.Sanitize(input.Body),
		SentAt:     time.Now(),
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store message"})
		return
	}

	hub.GlobalHub.Broadcast(hub.ConversationTopic(msg.SenderID, msg.ReceiverID), hub.Event{
		Type: hub.EventChatMessage,
		Payload: ChatPayload{
			Sender:    msg.SenderID,
			Receiver:  msg.ReceiverID,
			Message:   msg.Body,
			Timestamp: msg.SentAt,
		},
	})

	c.JSON(http.StatusCreated, newMessageResponse(msg))
}

// GetConversation godoc
// @Summary      Get message history with a peer
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        peerId query int true  "Peer user ID"
// @Param        limit  query int false "Max messages" default(50)
// @Success      200 {array} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Router       /messages/conversation [get]
func GetConversation(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	peerID, ok := parseUintQuery(c, "peerId")
	if !ok || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A numeric 'peerId' query parameter is required"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := parseLimit(raw); err == nil {
			limit = parsed
		}
	}

	var messages []models.Message
	if err := database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			viewerID, peerID, peerID, viewerID).
		Order("sent_at").
		Limit(limit).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, newMessageResponse(msg))
	}
	c.JSON(http.StatusOK, responses)
}

// StreamEvents godoc
// @Summary      Subscribe to real-time events
// @Description  Server-sent event stream. Subscribes the session to the conversation room for the given peer and/or the transition feed for a relationship, plus the active-session count broadcast every connect/disconnect.
// @Tags         messages
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        peerId     query int false "Peer user ID for the conversation room"
// @Param        relationId query int false "Relationship ID to watch for transitions"
// @Router       /events/stream [get]
func StreamEvents(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var topics []string
	if peerID, ok := parseUintQuery(c, "peerId"); ok && peerID != 0 {
		topics = append(topics, hub.ConversationTopic(viewerID.(uint), peerID))
	}
	if relationID, ok := parseUintQuery(c, "relationId"); ok && relationID != 0 {
		topics = append(topics, hub.RelationTopic(relationID))
	}

	sessionID, client := hub.GlobalHub.Connect(topics...)
	defer hub.GlobalHub.Disconnect(sessionID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func parseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	return limit, nil
}
