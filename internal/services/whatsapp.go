package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"optical-booking-server/internal/config"
)

// WhatsAppSender delivers a text reply to a phone number. The webhook
// handler depends on this interface; tests supply stubs.
type WhatsAppSender interface {
	SendText(to, text string) error
}

// WhatsAppClient sends messages through the Meta Cloud API. When no
// access token is configured (local development), sends become no-ops.
type WhatsAppClient struct {
	Cfg        config.WhatsAppConfig
	HTTPClient *http.Client
	// BaseURL is overridable for tests.
	BaseURL string
}

// NewWhatsAppClient creates a client for the configured phone number.
func NewWhatsAppClient(cfg config.WhatsAppConfig) *WhatsAppClient {
	return &WhatsAppClient{
		Cfg:        cfg,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    "https://graph.facebook.com/v19.0",
	}
}

type whatsAppTextPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText posts one text message to the Cloud API.
func (c *WhatsAppClient) SendText(to, text string) error {
	if c.Cfg.AccessToken == "" {
		return nil
	}

	payload := whatsAppTextPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = text

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.BaseURL, c.Cfg.PhoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Cfg.AccessToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp api returned status %d", resp.StatusCode)
	}
	return nil
}
