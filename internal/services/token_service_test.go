package services

import (
	"testing"

	"membership-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	setupTest(t, "http://127.0.0.1:1")

	svc := NewTokenService()
	token, err := svc.Issue("member@buyer.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "member@buyer.com", email)
}

func TestTokenRejectsTampering(t *testing.T) {
	setupTest(t, "http://127.0.0.1:1")

	svc := NewTokenService()
	token, err := svc.Issue("member@buyer.com")
	require.NoError(t, err)

	_, err = svc.Parse(token + "x")
	assert.Error(t, err)

	_, err = svc.Parse("not-a-token")
	assert.Error(t, err)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	setupTest(t, "http://127.0.0.1:1")

	token, err := NewTokenService().Issue("member@buyer.com")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = NewTokenService().Parse(token)
	assert.Error(t, err)
}
