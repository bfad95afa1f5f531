package service

import (
	"context"

	"pos-storefront/models"
)

// SaleServiceInterface defines the contract for the POS backend operations
type SaleServiceInterface interface {
	ListStock(ctx context.Context, resellerID string) ([]map[string]string, error)
	LookupProduct(ctx context.Context, productID, shortID string) (map[string]string, error)
	RecordSale(ctx context.Context, in models.SaleInput) (*models.SaleResult, error)
	ListSales(ctx context.Context, limit int) ([]models.SaleRecord, error)
}

// Ensure SaleService implements SaleServiceInterface
var _ SaleServiceInterface = (*SaleService)(nil)
