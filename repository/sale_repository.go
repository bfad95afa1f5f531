package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pos-storefront/db"
	"pos-storefront/models"
)

// ErrLedgerDisabled is returned when no ledger database is connected
var ErrLedgerDisabled = errors.New("sale ledger is not configured")

// SaleRepository handles database operations for the POS sale ledger
type SaleRepository struct{}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

// Ensure SaleRepository implements SaleRepositoryInterface
var _ SaleRepositoryInterface = (*SaleRepository)(nil)

// Insert stores one recorded sale
func (r *SaleRepository) Insert(ctx context.Context, sale *models.SaleRecord) error {
	if db.DB == nil {
		return ErrLedgerDisabled
	}

	soldAt, err := time.Parse(time.RFC3339Nano, sale.SoldAt)
	if err != nil {
		return fmt.Errorf("invalid sold_at %q: %w", sale.SoldAt, err)
	}

	query := `
		INSERT INTO pos_sales (
			id, sold_at, reseller_id, customer_id, product_id, short_id,
			qty, unit_price, commission_pct, total, payment_method
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = db.DB.ExecContext(ctx, query,
		sale.ID, soldAt, sale.ResellerID, sale.CustomerID, sale.ProductID, sale.ShortID,
		sale.Qty, sale.UnitPrice, sale.CommissionPct, sale.Total, sale.PaymentMethod,
	)
	if err != nil {
		log.Printf("❌ Insert: Error inserting sale id=%s: %v", sale.ID, err)
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	log.Printf("✅ Insert: Sale recorded id=%s product=%s qty=%d total=%.2f", sale.ID, sale.ProductID, sale.Qty, sale.Total)
	return nil
}

// ListRecent returns the latest sales, newest first
func (r *SaleRepository) ListRecent(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	if db.DB == nil {
		return nil, ErrLedgerDisabled
	}

	query := `
		SELECT id, sold_at, reseller_id, customer_id, product_id, short_id,
			qty, unit_price, commission_pct, total, payment_method
		FROM pos_sales
		ORDER BY sold_at DESC
		LIMIT $1
	`
	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		log.Printf("❌ ListRecent: Error querying sales: %v", err)
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []models.SaleRecord{}
	for rows.Next() {
		var s models.SaleRecord
		var soldAt time.Time
		if err := rows.Scan(
			&s.ID, &soldAt, &s.ResellerID, &s.CustomerID, &s.ProductID, &s.ShortID,
			&s.Qty, &s.UnitPrice, &s.CommissionPct, &s.Total, &s.PaymentMethod,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		s.SoldAt = soldAt.Format(time.RFC3339)
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	return sales, nil
}
