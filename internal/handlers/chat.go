package handlers

import (
	"encoding/json"

	"optical-booking-server/internal/middleware"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/services"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ChatHandler exposes the booking assistant over the web chat surface
// and persists every conversation turn.
type ChatHandler struct {
	DB        *gorm.DB
	Assistant *services.Assistant
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(db *gorm.DB, assistant *services.Assistant) *ChatHandler {
	return &ChatHandler{DB: db, Assistant: assistant}
}

// SendMessageRequest represents the request body for one chat turn.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage handles one assistant turn: the user message and the
// generated reply are both stored, with the extracted intent kept on the
// user turn for audit.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userIDStr, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)
	organizationID, _ := middleware.GetOrganizationIDFromContext(c)

	reply, err := h.Assistant.Respond(organizationID, userRole, req.Message)
	if err != nil {
		utils.InternalServerError(c, "Assistant failed to process the message: "+err.Error())
		return
	}

	intentJSON, err := json.Marshal(reply.Intent)
	if err != nil {
		utils.InternalServerError(c, "Failed to serialize intent: "+err.Error())
		return
	}

	userTurn := models.ChatMessage{
		OrganizationID: organizationID,
		UserID:         userIDStr,
		Channel:        models.ChannelWeb,
		Role:           models.ChatRoleUser,
		Content:        req.Message,
		IntentJSON:     string(intentJSON),
	}
	assistantTurn := models.ChatMessage{
		OrganizationID: organizationID,
		UserID:         userIDStr,
		Channel:        models.ChannelWeb,
		Role:           models.ChatRoleAssistant,
		Content:        reply.Text,
	}

	if err := h.DB.Create(&userTurn).Error; err != nil {
		utils.InternalServerError(c, "Failed to store message: "+err.Error())
		return
	}
	if err := h.DB.Create(&assistantTurn).Error; err != nil {
		utils.InternalServerError(c, "Failed to store reply: "+err.Error())
		return
	}

	utils.Success(c, "Message processed successfully", reply)
}

// GetHistory handles fetching the caller's conversation history, oldest
// first.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userIDStr, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var messages []models.ChatMessage
	if err := h.DB.Where("user_id = ?", userIDStr).Order("created_at asc").Find(&messages).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch chat history: "+err.Error())
		return
	}

	utils.Success(c, "Chat history fetched successfully", messages)
}
