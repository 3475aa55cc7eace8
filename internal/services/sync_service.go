package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/internal/hotmart"
	"membership-api/internal/models"
	"membership-api/pkg/logging"
)

// SyncService imports historical sales into the local purchases table so the
// verifier's local fallback covers buyers from before the webhook was set up.
type SyncService struct {
	client *hotmart.Client

	// pageDelay spaces page fetches during the import.
	pageDelay time.Duration
}

// NewSyncService creates a sync service with the default inter-page delay.
func NewSyncService() *SyncService {
	return &SyncService{
		client:    hotmart.NewClient(),
		pageDelay: 1 * time.Second,
	}
}

// ImportHistorical walks the full sales history for the configured product and
// persists every access-granting sale. Returns the number of saved purchases.
func (s *SyncService) ImportHistorical(ctx context.Context) (int, error) {
	cfg := config.AppConfig

	token, err := s.client.GetAccessToken(ctx)
	if err != nil {
		return 0, err
	}
	if token == hotmart.DevToken {
		return 0, errors.New("hotmart credentials not configured")
	}

	imported := 0
	for page := 1; ; page++ {
		if page > 1 {
			select {
			case <-time.After(s.pageDelay):
			case <-ctx.Done():
				return imported, ctx.Err()
			}
		}

		resp, err := s.client.FetchSalesPage(ctx, token, page, hotmart.SearchOptions{
			Status:    cfg.DefaultStatus,
			ProductID: cfg.HotmartProductID,
		})
		if err != nil {
			return imported, err
		}

		for _, sale := range resp.Items {
			if !hotmart.StatusAccepted(sale.Purchase.Status) {
				continue
			}
			purchase := saleToPurchase(sale)
			if err := database.SavePurchase(purchase); err != nil {
				logging.Errorf("failed to save purchase %s: %v", purchase.TransactionID, err)
				continue
			}
			imported++
		}

		if !resp.PageInfo.HasNextPage {
			break
		}
	}

	logging.Infof("historical import finished, %d purchases saved", imported)
	return imported, nil
}

// saleToPurchase converts a sales-history entry to the local purchase row.
// Both product identifiers are kept so the row matches lookups by numeric id
// and by ucode alike.
func saleToPurchase(sale models.Sale) *models.Purchase {
	purchase := &models.Purchase{
		Email:         sale.Buyer.Email,
		BuyerName:     sale.Buyer.Name,
		ProductID:     numericProductID(sale.Product.ID),
		ProductUCode:  sale.Product.UCode,
		ProductName:   sale.Product.Name,
		TransactionID: sale.Purchase.Transaction,
		Status:        sale.Purchase.Status,
	}
	if sale.Purchase.ApprovedDate > 0 {
		t := time.UnixMilli(sale.Purchase.ApprovedDate)
		purchase.ApprovedDate = &t
	}
	return purchase
}

func numericProductID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
