package api

import (
	"net/http"

	"membership-api/internal/database"
	"membership-api/internal/response"
	"membership-api/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchPurchaseRequest looks a buyer up in the local purchases table.
type SearchPurchaseRequest struct {
	Email     string `json:"email" binding:"required,email"`
	ProductID string `json:"product_id"`
}

// SearchPurchaseResponse reports whether a local purchase exists.
type SearchPurchaseResponse struct {
	Success bool   `json:"success"`
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
}

// SearchPurchases checks the local purchases table for an access-granting
// sale. This is the endpoint the front end called as its database fallback.
// POST /api/purchases/search
func SearchPurchases(c *gin.Context) {
	var req SearchPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, SearchPurchaseResponse{
			Success: false,
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	found, err := database.HasAcceptedPurchase(req.Email, req.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, SearchPurchaseResponse{
			Success: false,
			Message: "Purchase lookup failed",
		})
		return
	}

	c.JSON(http.StatusOK, SearchPurchaseResponse{Success: true, Found: found})
}

// SyncHistorical imports the product's full sales history into the local
// purchases table. Admin only; the import pages through the remote API with a
// delay, so the request can take a while.
// POST /api/purchases/sync-historical
func SyncHistorical(c *gin.Context) {
	imported, err := services.NewSyncService().ImportHistorical(c.Request.Context())
	if err != nil {
		response.ErrorJSON(c, http.StatusBadGateway, "Historical import failed: "+err.Error())
		return
	}
	response.SuccessJSON(c, gin.H{"imported": imported})
}
