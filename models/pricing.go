package models

// ResellerPrice represents a row of the ResellerPricing tab.
// ValidFrom/ValidTo are ISO dates; empty means unbounded.
type ResellerPrice struct {
	ResellerID    string
	ProductID     string
	Price         Amount
	CommissionPct Amount
	ValidFrom     string
	ValidTo       string
}
