package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"pos-storefront/models"
	"pos-storefront/repository"
	"pos-storefront/service"
)

const (
	defaultSalesLimit = 50
	maxSalesLimit     = 500
)

// PosController handles HTTP requests of the POS backend
type PosController struct {
	sales service.SaleServiceInterface
	port  int
}

// NewPosController creates a new PosController; port is reported by /health
func NewPosController(sales service.SaleServiceInterface, port int) *PosController {
	return &PosController{
		sales: sales,
		port:  port,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// Health handles GET /health
func (c *PosController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "port": c.port})
}

// Stock handles GET /pos/stock?reseller_id=R1
// Example response:
// [{"product_id": "P-001", "short_id": "A1", "name": "Honey 250g", "base_price": "120", "reseller_id": "R1"}]
func (c *PosController) Stock(w http.ResponseWriter, r *http.Request) {
	resellerID := r.URL.Query().Get("reseller_id")

	items, err := c.sales.ListStock(r.Context(), resellerID)
	if err != nil {
		log.Printf("❌ Stock: Error reading stock: %v", err)
		http.Error(w, fmt.Sprintf("Failed to read stock: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Stock: %d rows (reseller_id=%q)", len(items), resellerID)
	writeJSON(w, http.StatusOK, items)
}

// Sale handles POST /pos/sale
// Example request:
// {"reseller_id": "", "product_id": "P-001", "short_id": "A1", "qty": 2, "customer_id": "C-000", "payment_method": "cash"}
// Example response:
// {"status": "ok", "total": 240}
func (c *PosController) Sale(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Sale: Received %s request to %s", r.Method, r.URL.Path)

	var in models.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Printf("❌ Sale: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	result, err := c.sales.RecordSale(r.Context(), in)
	if err != nil {
		log.Printf("❌ Sale: %v", err)
		switch {
		case errors.Is(err, service.ErrMissingProductRef), errors.Is(err, service.ErrInvalidQty):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrProductNotFound):
			http.Error(w, "Product not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to record sale: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Label handles GET /pos/label/{product_id} and returns a PNG shelf label
func (c *PosController) Label(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("product_id")
	if productID == "" {
		http.Error(w, "product_id parameter is required", http.StatusBadRequest)
		return
	}

	prod, err := c.sales.LookupProduct(r.Context(), productID, "")
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ Label: Error looking up product %s: %v", productID, err)
		http.Error(w, fmt.Sprintf("Failed to read products: %v", err), http.StatusInternalServerError)
		return
	}

	png, err := service.GenerateLabel(prod)
	if err != nil {
		log.Printf("❌ Label: Error generating label: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate label: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Printf("❌ Label: Error writing response: %v", err)
	}
}

// ListSales handles GET /pos/sales?limit=50
func (c *PosController) ListSales(w http.ResponseWriter, r *http.Request) {
	limit := defaultSalesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = min(n, maxSalesLimit)
	}

	sales, err := c.sales.ListSales(r.Context(), limit)
	if err != nil {
		if errors.Is(err, repository.ErrLedgerDisabled) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		log.Printf("❌ ListSales: %v", err)
		http.Error(w, fmt.Sprintf("Failed to list sales: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.SaleListResponse{Sales: sales})
}
