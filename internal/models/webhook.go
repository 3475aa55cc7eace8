package models

// Hotmart webhook event names this service reacts to.
const (
	EventPurchaseApproved = "PURCHASE_APPROVED"
	EventPurchaseRefunded = "PURCHASE_REFUNDED"
	EventPurchaseCanceled = "PURCHASE_CANCELED"
)

// HotmartWebhookPayload is the postback body Hotmart sends for purchase
// lifecycle events.
type HotmartWebhookPayload struct {
	ID    string      `json:"id"`
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}

type WebhookData struct {
	Buyer    Buyer           `json:"buyer"`
	Purchase WebhookPurchase `json:"purchase"`
}

type WebhookPurchase struct {
	Transaction string         `json:"transaction"`
	Status      string         `json:"status"`
	Product     WebhookProduct `json:"product"`
}

type WebhookProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
