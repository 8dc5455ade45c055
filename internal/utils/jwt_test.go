package utils

import (
	"testing"

	"optical-booking-server/internal/config"
	"optical-booking-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWTSecret:                 "access-secret",
		JWTRefreshSecret:          "refresh-secret",
		JWTExpirationMinutes:      15,
		JWTRefreshExpirationHours: 168,
	}
}

func testTokenUser() *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: "doctor-1"},
		OrganizationID: "org-1",
		Email:          "elena@clinica.mx",
		Role:           models.RoleDoctor,
	}
}

func TestGenerateTokensRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	user := testTokenUser()

	accessToken, refreshToken, err := GenerateTokens(user, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := ValidateToken(accessToken, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "doctor-1", claims.UserID)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, models.RoleDoctor, claims.Role)

	refreshClaims, err := ValidateToken(refreshToken, cfg.JWTRefreshSecret)
	require.NoError(t, err)
	assert.Equal(t, "doctor-1", refreshClaims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	accessToken, _, err := GenerateTokens(testTokenUser(), cfg)
	require.NoError(t, err)

	// An access token must not validate against the refresh secret.
	_, err = ValidateToken(accessToken, cfg.JWTRefreshSecret)
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", cfg.JWTSecret)
	assert.Error(t, err)
}
