package models

import "time"

// Purchase is a locally persisted copy of a Hotmart sale, synced in via webhook
// or the historical import. It backs the local-database fallback of the
// purchase verifier.
type Purchase struct {
	BaseModel
	Email     string `json:"email" gorm:"index;not null;size:255"`
	BuyerName string `json:"buyer_name" gorm:"size:255"`

	// ProductID is the numeric Hotmart id, ProductUCode the alternate ucode.
	// Both are kept so lookups match whichever form is configured.
	ProductID    string `json:"product_id" gorm:"size:100;index"`
	ProductUCode string `json:"product_ucode" gorm:"column:product_ucode;size:100;index"`

	ProductName   string     `json:"product_name" gorm:"size:255"`
	TransactionID string     `json:"transaction_id" gorm:"size:100;uniqueIndex"`
	Status        string     `json:"status" gorm:"size:30;index"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
}
