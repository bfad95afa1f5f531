package models

// Placeholder values sent with every storefront sale
const (
	DefaultResellerID    = ""
	DefaultCustomerID    = "C-000"
	DefaultPaymentMethod = "cash"
)

// SaleRequest is the body of POST /pos/sale.
// The storefront builds it from the first cart line only.
// Example:
// {"reseller_id": "", "product_id": "P-001", "short_id": "A1", "qty": 2, "customer_id": "C-000", "payment_method": "cash"}
type SaleRequest struct {
	ResellerID    string `json:"reseller_id"`
	ProductID     string `json:"product_id"`
	ShortID       string `json:"short_id"`
	Qty           int    `json:"qty"`
	CustomerID    string `json:"customer_id"`
	PaymentMethod string `json:"payment_method"`
}

// NewSaleRequest builds the sale snapshot for a single cart line
func NewSaleRequest(line CartLine) SaleRequest {
	return SaleRequest{
		ResellerID:    DefaultResellerID,
		ProductID:     line.ProductID,
		ShortID:       line.ShortID,
		Qty:           line.Qty,
		CustomerID:    DefaultCustomerID,
		PaymentMethod: DefaultPaymentMethod,
	}
}

// SaleInput is the lenient form of SaleRequest accepted by the backend.
// qty may arrive as a number or a numeric string; missing fields take defaults.
type SaleInput struct {
	ResellerID    string  `json:"reseller_id"`
	ProductID     string  `json:"product_id"`
	ShortID       string  `json:"short_id"`
	Qty           *Amount `json:"qty"`
	CustomerID    *string `json:"customer_id"`
	PaymentMethod *string `json:"payment_method"`
}

// SaleResult is the success body of POST /pos/sale
// Example: {"status": "ok", "total": 150}
type SaleResult struct {
	Status string  `json:"status"`
	Total  float64 `json:"total"`
}

// SaleRecord represents a sale kept in the ledger
type SaleRecord struct {
	ID            string  `json:"id"`
	SoldAt        string  `json:"soldAt"`
	ResellerID    string  `json:"resellerId"`
	CustomerID    string  `json:"customerId"`
	ProductID     string  `json:"productId"`
	ShortID       string  `json:"shortId"`
	Qty           int     `json:"qty"`
	UnitPrice     float64 `json:"unitPrice"`
	CommissionPct float64 `json:"commissionPct"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`
}

// SaleListResponse represents the response for listing ledger sales
type SaleListResponse struct {
	Sales []SaleRecord `json:"sales"`
}

// SaleEvent is the payload fired after a sale is recorded
type SaleEvent struct {
	ResellerID string  `json:"reseller_id"`
	CustomerID string  `json:"customer_id"`
	Total      float64 `json:"total"`
	ProductID  string  `json:"product_id"`
	Qty        int     `json:"qty"`
}
