package models

// Product represents one sellable entry of the catalog served by GET /pos/stock
type Product struct {
	ProductID string `json:"product_id"`
	ShortID   string `json:"short_id,omitempty"`
	Name      string `json:"name,omitempty"`
	BasePrice Amount `json:"base_price"`
}

// DisplayName returns the card title: name, falling back to product_id
func (p Product) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ProductID
}

// UnitPrice returns the numeric price bound to the "Add" action (0 when absent or non-numeric)
func (p Product) UnitPrice() float64 {
	return p.BasePrice.Value
}
