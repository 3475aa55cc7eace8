package hotmart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"membership-api/internal/config"
	"membership-api/internal/models"
	"membership-api/pkg/logging"
)

// DevToken is returned instead of a real bearer token when the service runs in
// development mode without a client id, so the flow can be exercised end to end
// with no credentials.
const DevToken = "dev-mode-token"

// ErrTokenExpired signals a 401 from the sales-history endpoint. Callers do not
// retry mid-scan; the next top-level verification fetches a fresh token.
var ErrTokenExpired = errors.New("hotmart: access token rejected")

// Client talks to the Hotmart OAuth and payments APIs.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new Hotmart API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// tokenRequest is the client-credentials grant body.
type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// GetAccessToken exchanges the configured client credentials for a bearer
// token. Single attempt, no refresh; a fresh token is fetched per top-level
// verification.
func (c *Client) GetAccessToken(ctx context.Context) (string, error) {
	cfg := config.AppConfig

	if cfg.IsDevelopment() && cfg.HotmartClientID == "" {
		logging.Warnf("development mode without credentials, using sentinel access token")
		return DevToken, nil
	}

	body, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     cfg.HotmartClientID,
		ClientSecret: cfg.HotmartClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.HotmartOAuthURL+"/security/oauth/token", bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+cfg.HotmartBasicToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		logging.Errorf("token endpoint returned %d: %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenResp models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	return tokenResp.AccessToken, nil
}

// SearchOptions narrows a sales-history page fetch.
type SearchOptions struct {
	Status     string
	ProductID  string
	BuyerEmail string
}

// FetchSalesPage fetches one page of the sales history. The query is bounded
// by a trailing date window to keep result volume down. Returns
// ErrTokenExpired on 401.
func (c *Client) FetchSalesPage(ctx context.Context, token string, page int, opts SearchOptions) (*models.SalesHistoryResponse, error) {
	cfg := config.AppConfig

	params := url.Values{}
	params.Set("transaction_status", opts.Status)
	params.Set("max_results", strconv.Itoa(cfg.MaxResultsPerPage))
	params.Set("page", strconv.Itoa(page))
	if opts.ProductID != "" {
		params.Set("product_id", opts.ProductID)
	}
	if opts.BuyerEmail != "" {
		params.Set("buyer_email", opts.BuyerEmail)
	}

	// Trailing window, epoch milliseconds
	end := time.Now()
	start := end.AddDate(0, 0, -cfg.DateWindowDays)
	params.Set("start_date", strconv.FormatInt(start.UnixMilli(), 10))
	params.Set("end_date", strconv.FormatInt(end.UnixMilli(), 10))

	endpoint := cfg.HotmartAPIBaseURL + "/payments/api/v1/sales/history?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sales request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sales request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		logging.Warnf("sales history returned 401 on page %d", page)
		return nil, ErrTokenExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		logging.Errorf("sales history returned %d: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("sales history returned status %d", resp.StatusCode)
	}

	var salesResp models.SalesHistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&salesResp); err != nil {
		return nil, fmt.Errorf("failed to parse sales history response: %w", err)
	}

	return &salesResp, nil
}
