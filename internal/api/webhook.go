package api

import (
	"net/http"
	"strconv"
	"time"

	"membership-api/internal/config"
	"membership-api/internal/database"
	"membership-api/internal/models"
	"membership-api/internal/response"
	"membership-api/internal/services"
	"membership-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

// HotmartWebhook processes purchase lifecycle postbacks from Hotmart.
// PURCHASE_APPROVED stores the sale locally; refunds and cancellations revoke
// member access. Unknown events are acknowledged and ignored so Hotmart does
// not retry them forever.
// POST /api/hotmart/webhook
func HotmartWebhook(c *gin.Context) {
	if hottok := config.AppConfig.WebhookHottok; hottok != "" {
		if c.GetHeader("X-HOTMART-HOTTOK") != hottok {
			logging.Warnf("webhook rejected: bad hottok from %s", c.ClientIP())
			response.ErrorJSON(c, http.StatusUnauthorized, "Invalid webhook token")
			return
		}
	}

	var payload models.HotmartWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid webhook payload: "+err.Error())
		return
	}

	logging.Infof("processing webhook event %s for %s", payload.Event, payload.Data.Buyer.Email)

	switch payload.Event {
	case models.EventPurchaseApproved:
		now := time.Now()
		purchase := &models.Purchase{
			Email:         payload.Data.Buyer.Email,
			BuyerName:     payload.Data.Buyer.Name,
			ProductID:     strconv.FormatInt(payload.Data.Purchase.Product.ID, 10),
			ProductName:   payload.Data.Purchase.Product.Name,
			TransactionID: payload.Data.Purchase.Transaction,
			Status:        payload.Data.Purchase.Status,
			ApprovedDate:  &now,
		}
		if purchase.Status == "" {
			purchase.Status = "APPROVED"
		}
		if err := database.SavePurchase(purchase); err != nil {
			logging.Errorf("failed to save webhook purchase %s: %v", purchase.TransactionID, err)
			response.ErrorJSON(c, http.StatusInternalServerError, "Failed to store purchase")
			return
		}

	case models.EventPurchaseRefunded:
		if err := services.NewUserService().Deactivate(payload.Data.Buyer.Email, "REFUNDED"); err != nil {
			logging.Errorf("failed to process refund for %s: %v", payload.Data.Buyer.Email, err)
			response.ErrorJSON(c, http.StatusInternalServerError, "Failed to revoke access")
			return
		}

	case models.EventPurchaseCanceled:
		if err := services.NewUserService().Deactivate(payload.Data.Buyer.Email, "CANCELED"); err != nil {
			logging.Errorf("failed to process cancellation for %s: %v", payload.Data.Buyer.Email, err)
			response.ErrorJSON(c, http.StatusInternalServerError, "Failed to revoke access")
			return
		}

	default:
		logging.Infof("ignoring webhook event %s", payload.Event)
	}

	response.SuccessJSON(c, gin.H{"event": payload.Event})
}
