package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"pos-storefront/models"
	"pos-storefront/pricing"
	"pos-storefront/repository"
)

var (
	// ErrMissingProductRef is returned when a sale names neither product_id nor short_id
	ErrMissingProductRef = errors.New("product_id or short_id required")
	// ErrProductNotFound is returned when no product matches the sale or label request
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQty is returned when qty is not a positive whole number
	ErrInvalidQty = errors.New("qty must be a whole number greater than 0")
)

// SaleService records POS sales against the spreadsheet
type SaleService struct {
	sheets    SheetsServiceInterface
	ledger    repository.SaleRepositoryInterface
	publisher SalePublisher
	now       func() time.Time
}

// NewSaleService creates a new SaleService. ledger and publisher may be nil.
func NewSaleService(sheets SheetsServiceInterface, ledger repository.SaleRepositoryInterface, publisher SalePublisher) *SaleService {
	return &SaleService{
		sheets:    sheets,
		ledger:    ledger,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListStock returns the Stock tab, filtered by reseller when resellerID is not empty
func (s *SaleService) ListStock(ctx context.Context, resellerID string) ([]map[string]string, error) {
	items, err := s.sheets.ReadTab(ctx, TabStock)
	if err != nil {
		return nil, err
	}
	if resellerID == "" {
		return items, nil
	}

	filtered := make([]map[string]string, 0, len(items))
	for _, it := range items {
		if it["reseller_id"] == resellerID {
			filtered = append(filtered, it)
		}
	}
	return filtered, nil
}

// LookupProduct finds a product by product_id, else by short_id, in sheet order
func (s *SaleService) LookupProduct(ctx context.Context, productID, shortID string) (map[string]string, error) {
	products, err := s.sheets.ReadTab(ctx, TabProducts)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if productID != "" && p["product_id"] == productID {
			return p, nil
		}
		if shortID != "" && p["short_id"] == shortID {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// normalize applies defaults and validates a sale input
func normalize(in models.SaleInput) (models.SaleRequest, error) {
	req := models.SaleRequest{
		ResellerID:    in.ResellerID,
		ProductID:     in.ProductID,
		ShortID:       in.ShortID,
		Qty:           1,
		CustomerID:    models.DefaultCustomerID,
		PaymentMethod: models.DefaultPaymentMethod,
	}
	if in.CustomerID != nil {
		req.CustomerID = *in.CustomerID
	}
	if in.PaymentMethod != nil {
		req.PaymentMethod = *in.PaymentMethod
	}
	if in.Qty != nil && in.Qty.Present {
		v, ok := in.Qty.Float()
		if !ok || v != math.Trunc(v) || v < 1 {
			return req, ErrInvalidQty
		}
		req.Qty = int(v)
	}
	if req.ProductID == "" && req.ShortID == "" {
		return req, ErrMissingProductRef
	}
	return req, nil
}

// RecordSale prices one sale line, appends it to the Sales tab, records it in the
// ledger when one is configured and publishes the sale event.
func (s *SaleService) RecordSale(ctx context.Context, in models.SaleInput) (*models.SaleResult, error) {
	req, err := normalize(in)
	if err != nil {
		return nil, err
	}

	prod, err := s.LookupProduct(ctx, req.ProductID, req.ShortID)
	if err != nil {
		return nil, err
	}
	productID := prod["product_id"]
	shortID := prod["short_id"]

	priceRows, err := s.sheets.ReadTab(ctx, TabResellerPricing)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rp, found := pricing.SelectResellerPrice(pricing.ResellerRowsFromSheet(priceRows), req.ResellerID, productID, now)
	price := pricing.UnitPrice(rp, found, models.ParseAmount(prod["base_price"]))
	total := price * float64(req.Qty)

	commission := 0.0
	if found {
		commission = rp.CommissionPct.Value
	}

	row := []interface{}{
		now.Format("2006-01-02T15:04:05.000000"), "", "",
		req.CustomerID, productID, shortID, req.Qty, price, commission, total, req.PaymentMethod,
	}
	if err := s.sheets.AppendRow(ctx, TabSales, row); err != nil {
		return nil, err
	}
	log.Printf("✅ RecordSale: product=%s qty=%d price=%.2f total=%.2f", productID, req.Qty, price, total)

	if s.ledger != nil {
		record := &models.SaleRecord{
			ID:            uuid.NewString(),
			SoldAt:        now.UTC().Format(time.RFC3339Nano),
			ResellerID:    req.ResellerID,
			CustomerID:    req.CustomerID,
			ProductID:     productID,
			ShortID:       shortID,
			Qty:           req.Qty,
			UnitPrice:     price,
			CommissionPct: commission,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
		}
		// The sheet is the system of record; a ledger failure is only logged.
		if err := s.ledger.Insert(ctx, record); err != nil {
			log.Printf("⚠️  RecordSale: ledger insert failed: %v", err)
		}
	}

	if s.publisher != nil {
		event := models.SaleEvent{
			ResellerID: req.ResellerID,
			CustomerID: req.CustomerID,
			Total:      total,
			ProductID:  productID,
			Qty:        req.Qty,
		}
		if err := s.publisher.PublishSale(ctx, event); err != nil {
			log.Printf("⚠️  RecordSale: %v", err)
		}
	}

	return &models.SaleResult{Status: "ok", Total: total}, nil
}

// ListSales returns the latest ledger sales
func (s *SaleService) ListSales(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	if s.ledger == nil {
		return nil, repository.ErrLedgerDisabled
	}
	sales, err := s.ledger.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
