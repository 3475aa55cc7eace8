package database

import (
	"strings"

	"membership-api/internal/models"

	"gorm.io/gorm"
)

// acceptedStatuses are the transaction states that grant access.
var acceptedStatuses = []string{"APPROVED", "COMPLETE", "COMPLETED"}

// SavePurchase inserts a purchase keyed by transaction id, updating the status
// on conflict (webhooks can replay and the historical import overlaps them).
func SavePurchase(purchase *models.Purchase) error {
	purchase.Email = strings.ToLower(purchase.Email)

	var existing models.Purchase
	err := DB.Where("transaction_id = ?", purchase.TransactionID).First(&existing).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return DB.Create(purchase).Error
		}
		return err
	}

	existing.Status = purchase.Status
	existing.ApprovedDate = purchase.ApprovedDate
	return DB.Save(&existing).Error
}

// HasAcceptedPurchase reports whether the local purchases table holds an
// access-granting sale for the email, optionally restricted to a product.
// The product filter accepts either the numeric id or the ucode, whichever
// the configuration uses. This is the verifier's local-database fallback.
func HasAcceptedPurchase(email, productID string) (bool, error) {
	var count int64
	query := DB.Model(&models.Purchase{}).
		Where("email = ? AND status IN ?", strings.ToLower(email), acceptedStatuses)
	if productID != "" {
		query = query.Where("(product_id = ? OR product_ucode = ?)", productID, productID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPurchasesRevoked updates all purchases for the email to the given
// terminal status (REFUNDED or CANCELED).
func MarkPurchasesRevoked(email, status string) error {
	return DB.Model(&models.Purchase{}).
		Where("email = ?", strings.ToLower(email)).
		Update("status", status).Error
}
