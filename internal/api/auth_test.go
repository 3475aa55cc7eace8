package api

import (
	"net/http"
	"testing"

	"membership-api/internal/models"
	"membership-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedSale(email string) models.Sale {
	return models.Sale{
		Buyer:    models.Buyer{Email: email, Name: "Buyer"},
		Product:  models.Product{ID: 42, Name: "Course"},
		Purchase: models.PurchaseInfo{Transaction: "HP-" + email, Status: "APPROVED"},
	}
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyEmailNewBuyer(t *testing.T) {
	srv := startHotmart(t, []models.Sale{approvedSale("new@buyer.com")}, nil)
	r := setupRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "new@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp VerifyEmailResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.Success)
	assert.True(t, resp.PurchaseFound)
	assert.Equal(t, "password_creation", resp.NextStep)
	assert.Equal(t, "api", resp.Source)
}

func TestVerifyEmailExistingPasswordRoutesToEntry(t *testing.T) {
	srv := startHotmart(t, []models.Sale{approvedSale("back@buyer.com")}, nil)
	r := setupRouter(t, srv.URL)

	svc := services.NewUserService()
	_, err := svc.EnsureVerifiedUser("back@buyer.com")
	require.NoError(t, err)
	_, err = svc.CreatePassword("back@buyer.com", "Str0ngPass", "")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "back@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp VerifyEmailResponse
	decodeBody(t, w, &resp)
	assert.True(t, resp.PurchaseFound)
	assert.Equal(t, "password_entry", resp.NextStep)
}

func TestVerifyEmailNotFound(t *testing.T) {
	srv := startHotmart(t, nil, nil)
	r := setupRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "ghost@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp VerifyEmailResponse
	decodeBody(t, w, &resp)
	assert.False(t, resp.Success)
	assert.False(t, resp.PurchaseFound)
	assert.Equal(t, "email_entry", resp.NextStep)
}

func TestVerifyEmailOutage(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "someone@buyer.com"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVerifyEmailRejectsInvalidEmail(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
