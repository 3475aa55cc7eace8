package hotmart

import (
	"strconv"
	"strings"

	"membership-api/internal/models"
)

// AcceptedStatuses are the transaction states that grant member access.
var AcceptedStatuses = []string{"APPROVED", "COMPLETE", "COMPLETED"}

// StatusAccepted reports whether a transaction status grants access.
func StatusAccepted(status string) bool {
	for _, s := range AcceptedStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// MatchesBuyer reports whether a sale belongs to the given buyer email, holds
// an accepted status, and matches the configured product. All three must hold.
// Email comparison is case-insensitive; product matches when no product id is
// configured or the sale's numeric id or ucode equals it.
func MatchesBuyer(sale models.Sale, email, productID string) bool {
	if !strings.EqualFold(sale.Buyer.Email, email) {
		return false
	}
	if !StatusAccepted(sale.Purchase.Status) {
		return false
	}
	if productID == "" {
		return true
	}
	return strconv.FormatInt(sale.Product.ID, 10) == productID || sale.Product.UCode == productID
}

// FilterSales returns the sales matching MatchesBuyer.
func FilterSales(sales []models.Sale, email, productID string) []models.Sale {
	var matched []models.Sale
	for _, sale := range sales {
		if MatchesBuyer(sale, email, productID) {
			matched = append(matched, sale)
		}
	}
	return matched
}
