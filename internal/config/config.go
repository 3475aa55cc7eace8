package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the membership API.
type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DatabaseURL string
	SQLitePath  string

	// Redis configuration
	RedisURL string

	// Session token configuration
	JWTSecret        string
	TokenExpireHours int

	// Brevo email configuration
	BrevoAPIKey    string
	BrevoFromEmail string
	BrevoFromName  string

	// Hotmart credentials (resolved through the alias chain, see ResolveEnv)
	HotmartClientID     string
	HotmartClientSecret string
	HotmartBasicToken   string
	HotmartProductID    string

	// Hotmart API endpoints
	HotmartAPIBaseURL string
	HotmartOAuthURL   string

	// Sales-history search tuning
	MaxResultsPerPage int
	DefaultStatus     string
	ScanPageLimit     int
	DateWindowDays    int

	// Webhook verification token (Hotmart "hottok"), optional
	WebhookHottok string

	ServiceName string
}

var AppConfig *Config

// envAliasPatterns are the historical spellings the front end accumulated for
// the Hotmart credentials over three config rewrites. First non-empty wins.
var envAliasPatterns = []string{"VITE_%s", "%s", "VITE_YOUR_%s", "YOUR_%s", "HOTMART_%s", "VITE_HOTMART_%s"}

// ResolveEnv looks key up through every alias spelling and returns the first
// non-empty value, or "".
func ResolveEnv(key string) string {
	for _, pattern := range envAliasPatterns {
		if value := os.Getenv(fmt.Sprintf(pattern, key)); value != "" {
			return value
		}
	}
	return ""
}

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:             getEnv("PORT", "8080"),
		Mode:             getEnv("GIN_MODE", "debug"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SQLitePath:       getEnv("SQLITE_PATH", "membership-api.db"),
		RedisURL:         getEnv("REDIS_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", "dev-insecure-secret"),
		TokenExpireHours: getEnvInt("TOKEN_EXPIRE_HOURS", 24),
		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail:   getEnv("BREVO_FROM_EMAIL", ""),
		BrevoFromName:    getEnv("BREVO_FROM_NAME", "Teacher Poli"),

		HotmartClientID:     ResolveEnv("HOTMART_CLIENT_ID"),
		HotmartClientSecret: ResolveEnv("HOTMART_CLIENT_SECRET"),
		HotmartBasicToken:   ResolveEnv("HOTMART_BASIC_TOKEN"),
		HotmartProductID:    firstNonEmpty(ResolveEnv("HOTMART_PRODUCT_ID"), ResolveEnv("PRODUCT_ID")),

		HotmartAPIBaseURL: getEnv("HOTMART_API_BASE_URL", "https://developers.hotmart.com"),
		HotmartOAuthURL:   getEnv("HOTMART_OAUTH_URL", "https://api-sec-vlc.hotmart.com"),

		MaxResultsPerPage: getEnvInt("HOTMART_MAX_RESULTS", 50),
		DefaultStatus:     getEnv("HOTMART_TRANSACTION_STATUS", "APPROVED"),
		ScanPageLimit:     getEnvInt("HOTMART_SCAN_PAGE_LIMIT", 5),
		DateWindowDays:    getEnvInt("HOTMART_DATE_WINDOW_DAYS", 90),

		WebhookHottok: getEnv("HOTMART_HOTTOK", ""),
		ServiceName:   getEnv("SERVICE_NAME", "Membership Service"),
	}

	// The sales-history API caps max_results at 50
	if AppConfig.MaxResultsPerPage > 50 {
		AppConfig.MaxResultsPerPage = 50
	}

	return nil
}

// IsDevelopment reports whether the service runs in a non-release gin mode.
func (c *Config) IsDevelopment() bool {
	return c.Mode != "release"
}

// ValidateHotmart checks that the Hotmart credentials are usable. In development
// mode missing credentials are tolerated so the rest of the flow can be exercised
// against the allowlist and local database.
func (c *Config) ValidateHotmart(warnf func(format string, v ...interface{})) bool {
	if c.IsDevelopment() && c.HotmartClientID == "" {
		warnf("development mode: Hotmart credentials not configured, purchase checks fall back to allowlist and local database")
		return true
	}

	missing := ""
	switch {
	case c.HotmartClientID == "":
		missing = "HOTMART_CLIENT_ID"
	case c.HotmartClientSecret == "":
		missing = "HOTMART_CLIENT_SECRET"
	case c.HotmartBasicToken == "":
		missing = "HOTMART_BASIC_TOKEN"
	}
	if missing != "" {
		warnf("Hotmart configuration missing: %s", missing)
		return false
	}
	return true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
