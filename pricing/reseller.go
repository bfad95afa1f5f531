package pricing

import (
	"time"

	"pos-storefront/models"
)

const dateLayout = "2006-01-02"

var (
	openStart = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	openEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// parseDate parses an ISO date; empty or invalid text yields fallback
func parseDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return fallback
	}
	return d
}

// day truncates t to its calendar date in UTC
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResellerRowsFromSheet converts ResellerPricing tab rows into typed prices
func ResellerRowsFromSheet(rows []map[string]string) []models.ResellerPrice {
	out := make([]models.ResellerPrice, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ResellerPrice{
			ResellerID:    r["reseller_id"],
			ProductID:     r["product_id"],
			Price:         models.ParseAmount(r["price"]),
			CommissionPct: models.ParseAmount(r["commission_pct"]),
			ValidFrom:     r["valid_from"],
			ValidTo:       r["valid_to"],
		})
	}
	return out
}

// SelectResellerPrice picks the reseller price valid on the given day.
// A missing valid_from counts as 1970-01-01 and a missing valid_to as 9999-12-31;
// when several rows match, the one with the latest valid_from wins (later rows win ties).
func SelectResellerPrice(rows []models.ResellerPrice, resellerID, productID string, on time.Time) (models.ResellerPrice, bool) {
	today := day(on)

	var best models.ResellerPrice
	var bestFrom time.Time
	found := false

	for _, r := range rows {
		if r.ResellerID != resellerID || r.ProductID != productID {
			continue
		}
		from := parseDate(r.ValidFrom, openStart)
		to := parseDate(r.ValidTo, openEnd)
		if today.Before(from) || today.After(to) {
			continue
		}
		if !found || !from.Before(bestFrom) {
			best = r
			bestFrom = from
			found = true
		}
	}
	return best, found
}

// UnitPrice resolves the price charged per unit: the reseller price when it parses,
// otherwise the product's base price, otherwise 0.
func UnitPrice(reseller models.ResellerPrice, found bool, basePrice models.Amount) float64 {
	if found {
		if v, ok := reseller.Price.Float(); ok {
			return v
		}
	}
	if v, ok := basePrice.Float(); ok {
		return v
	}
	return 0
}
