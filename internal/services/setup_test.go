package services

import (
	"testing"

	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/pkg/logging"

	"github.com/stretchr/testify/require"
)

// setupTest wires config and an in-memory database. The Hotmart endpoints
// point at the given base URL, usually an httptest server.
func setupTest(t *testing.T, hotmartURL string) {
	t.Helper()

	logging.InitLogging()
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
}
