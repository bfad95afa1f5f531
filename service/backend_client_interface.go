package service

import (
	"context"

	"pos-storefront/models"
)

// BackendClientInterface defines the contract for the two POS backend calls the storefront makes
type BackendClientInterface interface {
	FetchStock(ctx context.Context) ([]models.Product, error)
	SubmitSale(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error)
}
