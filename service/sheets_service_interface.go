package service

import "context"

// Sheet tabs used by the POS backend
const (
	TabStock           = "Stock"
	TabProducts        = "Products"
	TabResellerPricing = "ResellerPricing"
	TabSales           = "Sales"
)

// SheetsServiceInterface defines the contract for Google Sheets operations
type SheetsServiceInterface interface {
	// ReadTab returns the rows of a tab keyed by the header row
	ReadTab(ctx context.Context, tab string) ([]map[string]string, error)
	// AppendRow appends one row of raw values to a tab
	AppendRow(ctx context.Context, tab string, row []interface{}) error
}
