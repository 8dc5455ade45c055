package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"optical-booking-server/internal/config"
	"optical-booking-server/internal/models"
	"optical-booking-server/internal/services"
	"optical-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WhatsAppHandler receives Meta Cloud API webhooks and routes inbound
// patient messages through the booking assistant.
type WhatsAppHandler struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Assistant *services.Assistant
	Sender    services.WhatsAppSender
}

// NewWhatsAppHandler creates a new WhatsAppHandler.
func NewWhatsAppHandler(db *gorm.DB, cfg *config.Config, assistant *services.Assistant, sender services.WhatsAppSender) *WhatsAppHandler {
	return &WhatsAppHandler{DB: db, Cfg: cfg, Assistant: assistant, Sender: sender}
}

// VerifyWebhook handles Meta's webhook verification handshake: when the
// verify token matches, the raw challenge is echoed back as plain text.
func (h *WhatsAppHandler) VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.Cfg.WhatsApp.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}
	c.String(http.StatusForbidden, "verification failed")
}

// webhookPayload mirrors the slice of the Cloud API webhook body this
// handler consumes: inbound text messages only.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ReceiveMessage handles inbound webhook deliveries. Each text message
// from a registered patient number goes through the assistant; the reply
// is sent back over WhatsApp and both turns are persisted. The endpoint
// always returns 200 so Meta does not retry processed deliveries.
func (h *WhatsAppHandler) ReceiveMessage(c *gin.Context) {
	var payload webhookPayload
	if err := json.NewDecoder(c.Request.Body).Decode(&payload); err != nil {
		utils.BadRequest(c, "Invalid webhook payload: "+err.Error())
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, message := range change.Value.Messages {
				if message.Type != "text" || message.Text.Body == "" {
					continue
				}
				h.handleInbound(message.From, message.Text.Body)
			}
		}
	}

	utils.Success(c, "Webhook processed", nil)
}

// handleInbound processes one inbound text message. Failures are logged
// rather than surfaced; the webhook response stays 200 regardless.
func (h *WhatsAppHandler) handleInbound(from, text string) {
	var user models.User
	if err := h.DB.Where("whats_app_number = ?", from).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Unknown numbers get a registration hint, nothing is stored.
			if sendErr := h.Sender.SendText(from, "Hola, este número no está registrado en la clínica. Por favor regístrate en nuestro sitio para agendar citas."); sendErr != nil {
				log.Printf("whatsapp: failed to reply to unregistered number: %v", sendErr)
			}
		} else {
			log.Printf("whatsapp: failed to look up sender %s: %v", from, err)
		}
		return
	}

	reply, err := h.Assistant.Respond(user.OrganizationID, user.Role, text)
	if err != nil {
		log.Printf("whatsapp: assistant error for user %s: %v", user.ID, err)
		return
	}

	intentJSON, err := json.Marshal(reply.Intent)
	if err != nil {
		log.Printf("whatsapp: failed to serialize intent: %v", err)
		intentJSON = nil
	}

	userTurn := models.ChatMessage{
		OrganizationID: user.OrganizationID,
		UserID:         user.ID,
		Channel:        models.ChannelWhatsApp,
		Role:           models.ChatRoleUser,
		Content:        text,
		IntentJSON:     string(intentJSON),
	}
	assistantTurn := models.ChatMessage{
		OrganizationID: user.OrganizationID,
		UserID:         user.ID,
		Channel:        models.ChannelWhatsApp,
		Role:           models.ChatRoleAssistant,
		Content:        reply.Text,
	}

	if err := h.DB.Create(&userTurn).Error; err != nil {
		log.Printf("whatsapp: failed to store inbound turn: %v", err)
	}
	if err := h.DB.Create(&assistantTurn).Error; err != nil {
		log.Printf("whatsapp: failed to store reply turn: %v", err)
	}

	if err := h.Sender.SendText(from, reply.Text); err != nil {
		log.Printf("whatsapp: failed to send reply to %s: %v", from, err)
	}
}
