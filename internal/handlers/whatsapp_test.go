package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"optical-booking-server/internal/config"
	"optical-booking-server/internal/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWebhookRouter(verifyToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{WhatsApp: config.WhatsAppConfig{VerifyToken: verifyToken}}
	handler := NewWhatsAppHandler(nil, cfg, nil, nil)

	router := gin.New()
	router.GET("/webhook", handler.VerifyWebhook)
	return router
}

func TestVerifyWebhookEchoesChallenge(t *testing.T) {
	router := newWebhookRouter("clinic-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=clinic-secret&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())
}

func TestVerifyWebhookRejectsWrongToken(t *testing.T) {
	router := newWebhookRouter("clinic-secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "12345")
}

func TestRespondSchedulingErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation errors become 400", scheduling.NewValidationError("startTime", "must be before end time"), http.StatusBadRequest},
		{"conflicts become 409", scheduling.NewConflictError("overlaps existing entry"), http.StatusConflict},
		{"anything else becomes 500", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondSchedulingError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
