package services

import (
	"context"
	"strings"
	"time"

	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/internal/hotmart"
	"membership-api/pkg/logging"
)

// testEmails bypass the purchase check entirely. Demo/test backdoor carried
// over from the front end, not a security boundary.
var testEmails = []string{
	"teste@teacherpoli.com",
	"demo@teacherpoli.com",
	"admin@teacherpoli.com",
	"test@test.com",
	"usuario@teste.com",
}

// IsAllowlisted reports whether the email is one of the fixed test addresses.
func IsAllowlisted(email string) bool {
	lower := strings.ToLower(email)
	for _, e := range testEmails {
		if lower == e {
			return true
		}
	}
	return false
}

// Verification is the outcome of a purchase check. Source records which stage
// produced the positive answer.
type Verification struct {
	Found  bool   `json:"found"`
	Source string `json:"source,omitempty"` // allowlist, cache, api, scan, local
}

// Verifier orchestrates the purchase check: allowlist, direct filtered search,
// bounded multi-page scan, then the local purchases table.
type Verifier struct {
	client *hotmart.Client
	cache  *RedisService

	// scanDelay spaces page fetches during the fallback scan to stay under
	// the API rate limit.
	scanDelay time.Duration
}

// NewVerifier creates a verifier with the default inter-page delay.
func NewVerifier() *Verifier {
	return &Verifier{
		client:    hotmart.NewClient(),
		cache:     NewRedisService(),
		scanDelay: 500 * time.Millisecond,
	}
}

// VerifyPurchase checks whether the email bought the configured product.
// A remote failure is returned as an error only when no stage could produce a
// positive answer, so callers can tell "service unavailable" from "no
// purchase".
func (v *Verifier) VerifyPurchase(ctx context.Context, email string) (Verification, error) {
	if IsAllowlisted(email) {
		return Verification{Found: true, Source: "allowlist"}, nil
	}

	if found, ok := v.cache.GetCachedVerification(ctx, email); ok && found {
		return Verification{Found: true, Source: "cache"}, nil
	}

	cfg := config.AppConfig
	var remoteErr error

	token, err := v.client.GetAccessToken(ctx)
	if err != nil {
		logging.Errorf("failed to acquire access token: %v", err)
		remoteErr = err
	} else if token == hotmart.DevToken {
		// No credentials configured: skip the remote stages entirely and let
		// the allowlist and local purchases table answer.
		logging.Infof("sentinel token, skipping remote sales search for %s", email)
	} else {
		found, err := v.searchByEmail(ctx, token, email)
		if err != nil {
			logging.Errorf("direct sales search failed for %s: %v", email, err)
			remoteErr = err
		} else if found {
			v.cache.CacheVerification(ctx, email, true)
			return Verification{Found: true, Source: "api"}, nil
		}

		if remoteErr == nil {
			found, err = v.scanPages(ctx, token, email)
			if err != nil {
				logging.Errorf("sales page scan failed for %s: %v", email, err)
				remoteErr = err
			} else if found {
				v.cache.CacheVerification(ctx, email, true)
				return Verification{Found: true, Source: "scan"}, nil
			}
		}
	}

	// Local purchases table, synced via webhook and the historical import.
	found, err := database.HasAcceptedPurchase(email, cfg.HotmartProductID)
	if err != nil {
		logging.Errorf("local purchase lookup failed for %s: %v", email, err)
		if remoteErr == nil {
			remoteErr = err
		}
	} else if found {
		v.cache.CacheVerification(ctx, email, true)
		return Verification{Found: true, Source: "local"}, nil
	}

	if remoteErr != nil {
		return Verification{}, remoteErr
	}

	logging.Infof("no purchase found for %s", email)
	return Verification{Found: false}, nil
}

// searchByEmail runs the direct filtered search: one page with the email as a
// server-side filter, re-checked locally against status and product.
func (v *Verifier) searchByEmail(ctx context.Context, token, email string) (bool, error) {
	cfg := config.AppConfig
	page, err := v.client.FetchSalesPage(ctx, token, 1, hotmart.SearchOptions{
		Status:     cfg.DefaultStatus,
		ProductID:  cfg.HotmartProductID,
		BuyerEmail: email,
	})
	if err != nil {
		return false, err
	}
	return len(hotmart.FilterSales(page.Items, email, cfg.HotmartProductID)) > 0, nil
}

// scanPages is the fallback full scan: iterate unfiltered pages up to the
// configured cap, stopping as soon as a match shows up. Rate-limited per email
// through Redis so repeated failed logins do not hammer the API.
func (v *Verifier) scanPages(ctx context.Context, token, email string) (bool, error) {
	cfg := config.AppConfig

	if !v.cache.ScanAllowed(ctx, email) {
		logging.Warnf("page scan for %s skipped, rate limited", email)
		return false, nil
	}

	for page := 1; page <= cfg.ScanPageLimit; page++ {
		if page > 1 {
			select {
			case <-time.After(v.scanDelay):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}

		resp, err := v.client.FetchSalesPage(ctx, token, page, hotmart.SearchOptions{
			Status:    cfg.DefaultStatus,
			ProductID: cfg.HotmartProductID,
		})
		if err != nil {
			return false, err
		}

		if len(hotmart.FilterSales(resp.Items, email, cfg.HotmartProductID)) > 0 {
			return true, nil
		}
		if !resp.PageInfo.HasNextPage {
			break
		}
	}
	return false, nil
}
