package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/middleware"
	"github.com/studenthub/studenthub-api/internal/realtime"
	"github.com/studenthub/studenthub-api/internal/services"
)

// MessageHandler coordinates chat HTTP handlers and the SSE stream.
type MessageHandler struct {
	messageService *services.MessageService
	hub            *realtime.Hub
	logger         *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService, hub *realtime.Hub, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		hub:            hub,
		logger:         logger,
	}
}

// ListMessages returns all messages.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.messageService.ListMessages(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTOs(messages))
}

// Conversation returns the messages exchanged between two students in either
// direction, ordered by timestamp ascending. The `student_id` side defaults
// to the caller.
func (h *MessageHandler) Conversation(c *gin.Context) {
	withID, err := strconv.ParseUint(c.Query("with"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid or missing 'with' parameter")
		return
	}

	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthenticated(c)
		return
	}

	studentID := identity.StudentID
	if raw := c.Query("student_id"); raw != "" {
		studentID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid student_id")
			return
		}
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), studentID, withID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTOs(messages))
}

// CreateMessage persists a message after verifying both participants exist.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	type CreateMessageRequest struct {
		SenderID    uint64 `json:"sender_id" binding:"required"`
		RecipientID uint64 `json:"recipient_id" binding:"required"`
		Text        string `json:"text" binding:"required"`
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), services.CreateMessageInput{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Text:        req.Text,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}

// UpdateMessage replaces the text of a message.
func (h *MessageHandler) UpdateMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateMessageRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.UpdateMessageText(c.Request.Context(), id, req.Text)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTO(*message))
}

// DeleteMessage removes a message.
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.messageService.DeleteMessage(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stream pushes messages addressed to recipient_id to the client as
// server-sent events. Delivery is best effort; a reconnecting client
// re-fetches history through the ordinary read endpoints.
func (h *MessageHandler) Stream(c *gin.Context) {
	recipientID, err := strconv.ParseUint(c.Query("recipient_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid or missing recipient_id")
		return
	}

	ch, cancel := h.hub.Subscribe(recipientID)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent("message", message)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
