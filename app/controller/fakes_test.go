package controller

import (
	"context"
	"sync"

	"pos-storefront/models"
	"pos-storefront/service"
)

type fakeBackend struct {
	mu         sync.Mutex
	products   []models.Product
	stockErr   error
	saleErr    error
	saleResult *models.SaleResult
	fetchCalls int
	sales      []models.SaleRequest
}

func (f *fakeBackend) FetchStock(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	return f.products, nil
}

func (f *fakeBackend) SubmitSale(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, sale)
	if f.saleErr != nil {
		return nil, f.saleErr
	}
	if f.saleResult != nil {
		return f.saleResult, nil
	}
	return &models.SaleResult{Status: "ok"}, nil
}

func (f *fakeBackend) setStockErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockErr = err
}

func (f *fakeBackend) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls
}

func (f *fakeBackend) submitted() []models.SaleRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.SaleRequest, len(f.sales))
	copy(out, f.sales)
	return out
}

type fakePriceList struct {
	pdf []byte
	err error
}

func (f *fakePriceList) GeneratePDF(ctx context.Context) ([]byte, error) {
	return f.pdf, f.err
}

type staticURL string

func (s staticURL) BackendURL() string { return string(s) }

type fakeSaleService struct {
	stock      []map[string]string
	stockErr   error
	products   map[string]map[string]string
	recordFn   func(in models.SaleInput) (*models.SaleResult, error)
	sales      []models.SaleRecord
	salesErr   error
	stockQuery string
	salesLimit int
}

func (f *fakeSaleService) ListStock(ctx context.Context, resellerID string) ([]map[string]string, error) {
	f.stockQuery = resellerID
	return f.stock, f.stockErr
}

func (f *fakeSaleService) LookupProduct(ctx context.Context, productID, shortID string) (map[string]string, error) {
	if p, ok := f.products[productID]; ok {
		return p, nil
	}
	return nil, service.ErrProductNotFound
}

func (f *fakeSaleService) RecordSale(ctx context.Context, in models.SaleInput) (*models.SaleResult, error) {
	return f.recordFn(in)
}

func (f *fakeSaleService) ListSales(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	f.salesLimit = limit
	return f.sales, f.salesErr
}
