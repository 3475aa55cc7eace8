package models

// TokenResponse is the OAuth client-credentials response from the Hotmart
// security endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// SalesHistoryResponse is one page of GET /payments/api/v1/sales/history.
type SalesHistoryResponse struct {
	Items    []Sale   `json:"items"`
	PageInfo PageInfo `json:"page_info"`
}

// PageInfo carries the pagination cursor of the sales-history API. Only
// has_next_page is consumed here.
type PageInfo struct {
	TotalResults   int  `json:"total_results"`
	ResultsPerPage int  `json:"results_per_page"`
	HasNextPage    bool `json:"has_next_page"`
}

// Sale is a single sales-history entry. Field layout follows the Hotmart wire
// format: buyer, product and purchase are nested objects.
type Sale struct {
	Buyer    Buyer        `json:"buyer"`
	Product  Product      `json:"product"`
	Purchase PurchaseInfo `json:"purchase"`
}

type Buyer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Product struct {
	ID    int64  `json:"id"`
	UCode string `json:"ucode"`
	Name  string `json:"name"`
}

// PurchaseInfo is the purchase sub-object of a sale. ApprovedDate and OrderDate
// are epoch milliseconds.
type PurchaseInfo struct {
	Transaction  string `json:"transaction"`
	Status       string `json:"status"`
	ApprovedDate int64  `json:"approved_date"`
	OrderDate    int64  `json:"order_date"`
	Price        Price  `json:"price"`
}

type Price struct {
	Value        float64 `json:"value"`
	CurrencyCode string  `json:"currency_code"`
}
