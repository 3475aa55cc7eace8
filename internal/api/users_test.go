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

// loginToken logs in and returns the session token.
func loginToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/users/login",
		gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestCreateUserAndLoginFlow(t *testing.T) {
	srv := startHotmart(t, []models.Sale{approvedSale("new@buyer.com")}, nil)
	r := setupRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "new@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "new@buyer.com",
		"password":         "Str0ngPass",
		"confirm_password": "Str0ngPass",
		"name":             "Maria",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created AuthResponse
	decodeBody(t, w, &created)
	assert.True(t, created.Success)
	assert.NotEmpty(t, created.Token)
	require.NotNil(t, created.User)
	assert.Equal(t, "Maria", created.User.Name)
	assert.True(t, created.User.HasPassword)

	// Second create for the same email must point the client at login
	w = doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "new@buyer.com",
		"password":         "Other1Pass",
		"confirm_password": "Other1Pass",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	loginToken(t, r, "new@buyer.com", "Str0ngPass")

	w = doJSON(t, r, http.MethodPost, "/api/users/login",
		gin.H{"email": "new@buyer.com", "password": "WrongPass1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var denied AuthResponse
	decodeBody(t, w, &denied)
	assert.Equal(t, "Invalid email or password", denied.Message)
}

func TestCreateUserWeakPassword(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "new@buyer.com",
		"password":         "short",
		"confirm_password": "short",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp AuthResponse
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.Checks)
	assert.False(t, resp.Checks.Length)
	assert.False(t, resp.Checks.Uppercase)
	assert.False(t, resp.Checks.Number)
}

func TestCreateUserWithoutPurchase(t *testing.T) {
	srv := startHotmart(t, nil, nil)
	r := setupRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "stranger@buyer.com",
		"password":         "Str0ngPass",
		"confirm_password": "Str0ngPass",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUserRejectsRevokedAccount(t *testing.T) {
	// A refunded buyer who never set a password must not be able to claim the
	// account through the create path
	r := setupRouter(t, "http://127.0.0.1:1")

	svc := services.NewUserService()
	_, err := svc.EnsureVerifiedUser("gone@buyer.com")
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate("gone@buyer.com", "REFUNDED"))

	w := doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "gone@buyer.com",
		"password":         "Str0ngPass",
		"confirm_password": "Str0ngPass",
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAllowlistLogin(t *testing.T) {
	// Endpoints unreachable: test emails must log in without any remote call
	r := setupRouter(t, "http://127.0.0.1:1")

	token := loginToken(t, r, "teste@teacherpoli.com", "123456")
	assert.NotEmpty(t, token)

	w := doJSON(t, r, http.MethodPost, "/api/users/login",
		gin.H{"email": "teste@teacherpoli.com", "password": "12345"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlanGenerated(t *testing.T) {
	srv := startHotmart(t, []models.Sale{approvedSale("plan@buyer.com")}, nil)
	r := setupRouter(t, srv.URL)

	w := doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "plan@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/create", gin.H{
		"email":            "plan@buyer.com",
		"password":         "Str0ngPass",
		"confirm_password": "Str0ngPass",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created AuthResponse
	decodeBody(t, w, &created)

	w = doJSON(t, r, http.MethodPost, "/api/users/plan-generated", nil, created.Token)
	require.Equal(t, http.StatusOK, w.Code)

	// Verifying again must not reopen first access
	w = doJSON(t, r, http.MethodPost, "/api/auth/verify-email",
		gin.H{"email": "plan@buyer.com"}, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestPlanGeneratedRequiresToken(t *testing.T) {
	r := setupRouter(t, "http://127.0.0.1:1")

	w := doJSON(t, r, http.MethodPost, "/api/users/plan-generated", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/users/plan-generated", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
