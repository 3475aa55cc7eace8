package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/internal/models"
	"membership-api/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter wires config, an in-memory database and the full route table.
// Hotmart endpoints point at hotmartURL, usually an httptest server.
func setupRouter(t *testing.T, hotmartURL string) *gin.Engine {
	t.Helper()

	logging.InitLogging()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		Mode:                "debug",
		SQLitePath:          ":memory:",
		JWTSecret:           "test-secret",
		TokenExpireHours:    1,
		ServiceName:         "Membership Service",
		HotmartClientID:     "client-id",
		HotmartClientSecret: "client-secret",
		HotmartBasicToken:   "basic-token",
		HotmartProductID:    "42",
		HotmartOAuthURL:     hotmartURL,
		HotmartAPIBaseURL:   hotmartURL,
		MaxResultsPerPage:   50,
		DefaultStatus:       "APPROVED",
		ScanPageLimit:       5,
		DateWindowDays:      90,
	}

	require.NoError(t, database.InitDatabase())

	r := gin.New()
	SetupRoutes(r)
	return r
}

// startHotmart serves a minimal sales-history fake: the filtered search
// answers with directSales, unfiltered pages answer with scanSales and no
// further pages.
func startHotmart(t *testing.T, directSales, scanSales []models.Sale) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/security/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: "tok"})
	})
	mux.HandleFunc("/payments/api/v1/sales/history", func(w http.ResponseWriter, r *http.Request) {
		resp := models.SalesHistoryResponse{}
		if r.URL.Query().Get("buyer_email") != "" {
			resp.Items = directSales
		} else {
			resp.Items = scanSales
		}
		json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
