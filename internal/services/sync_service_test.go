package services

import (
	"context"
	"testing"

	"membership-api/internal/config"
	"membership-api/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportHistoricalRequiresCredentials(t *testing.T) {
	// Sentinel token: the import must refuse instead of hitting the real API
	setupTest(t, "http://127.0.0.1:1")
	config.AppConfig.HotmartClientID = ""

	_, err := NewSyncService().ImportHistorical(context.Background())
	assert.Error(t, err)
}

func TestSaleToPurchaseKeepsBothProductIdentifiers(t *testing.T) {
	sale := approvedSale("legacy@buyer.com")
	sale.Product.UCode = "abc-ucode"

	purchase := saleToPurchase(sale)
	assert.Equal(t, "42", purchase.ProductID)
	assert.Equal(t, "abc-ucode", purchase.ProductUCode)
}

func TestImportedSaleFoundByLocalFallback(t *testing.T) {
	setupTest(t, "http://127.0.0.1:1")

	sale := approvedSale("legacy@buyer.com")
	sale.Product.UCode = "abc-ucode"
	require.NoError(t, database.SavePurchase(saleToPurchase(sale)))

	// The configured product may use either identifier form
	for _, productID := range []string{"42", "abc-ucode", ""} {
		found, err := database.HasAcceptedPurchase("legacy@buyer.com", productID)
		require.NoError(t, err)
		assert.True(t, found, "product filter %q", productID)
	}

	found, err := database.HasAcceptedPurchase("legacy@buyer.com", "other-product")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaleToPurchaseApprovedDate(t *testing.T) {
	sale := approvedSale("legacy@buyer.com")
	sale.Purchase.ApprovedDate = 1700000000000

	purchase := saleToPurchase(sale)
	require.NotNil(t, purchase.ApprovedDate)
	assert.Equal(t, int64(1700000000000), purchase.ApprovedDate.UnixMilli())

	sale.Purchase.ApprovedDate = 0
	assert.Nil(t, saleToPurchase(sale).ApprovedDate)
}

func TestSaleToPurchaseWithoutNumericID(t *testing.T) {
	sale := approvedSale("legacy@buyer.com")
	sale.Product.ID = 0
	sale.Product.UCode = "abc-ucode"

	purchase := saleToPurchase(sale)
	assert.Empty(t, purchase.ProductID)
	assert.Equal(t, "abc-ucode", purchase.ProductUCode)
}
