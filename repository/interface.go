package repository

import (
	"context"

	"pos-storefront/models"
)

// SaleRepositoryInterface defines the contract for the sale ledger
type SaleRepositoryInterface interface {
	Insert(ctx context.Context, sale *models.SaleRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.SaleRecord, error)
}
