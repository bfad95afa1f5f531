package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-storefront/models"
	"pos-storefront/repository"
	"pos-storefront/service"
)

func TestHealth(t *testing.T) {
	c := NewPosController(&fakeSaleService{}, 8091)
	rec := httptest.NewRecorder()

	c.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","port":8091}`, rec.Body.String())
}

func TestStock(t *testing.T) {
	sales := &fakeSaleService{stock: []map[string]string{
		{"product_id": "P-1", "short_id": "A1", "name": "Honey", "base_price": "120", "reseller_id": "R1"},
	}}
	c := NewPosController(sales, 8091)
	rec := httptest.NewRecorder()

	c.Stock(rec, httptest.NewRequest(http.MethodGet, "/pos/stock?reseller_id=R1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "R1", sales.stockQuery)
	assert.JSONEq(t, `[{"product_id":"P-1","short_id":"A1","name":"Honey","base_price":"120","reseller_id":"R1"}]`, rec.Body.String())
}

func TestStockError(t *testing.T) {
	c := NewPosController(&fakeSaleService{stockErr: errors.New("quota exceeded")}, 8091)
	rec := httptest.NewRecorder()

	c.Stock(rec, httptest.NewRequest(http.MethodGet, "/pos/stock", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSale(t *testing.T) {
	var got models.SaleInput
	sales := &fakeSaleService{recordFn: func(in models.SaleInput) (*models.SaleResult, error) {
		got = in
		return &models.SaleResult{Status: "ok", Total: 240}, nil
	}}
	c := NewPosController(sales, 8091)
	rec := httptest.NewRecorder()
	body := `{"reseller_id":"","product_id":"P-1","short_id":"A1","qty":2,"customer_id":"C-000","payment_method":"cash"}`

	c.Sale(rec, httptest.NewRequest(http.MethodPost, "/pos/sale", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","total":240}`, rec.Body.String())
	assert.Equal(t, "P-1", got.ProductID)
	require.NotNil(t, got.Qty)
	assert.Equal(t, float64(2), got.Qty.Value)
}

func TestSaleErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid json", `{"product_id":`, nil, http.StatusBadRequest, "Invalid request body"},
		{"missing product", `{}`, service.ErrMissingProductRef, http.StatusBadRequest, "product_id or short_id required"},
		{"invalid qty", `{"product_id":"P-1","qty":0}`, service.ErrInvalidQty, http.StatusBadRequest, "qty must be"},
		{"unknown product", `{"product_id":"P-9"}`, fmt.Errorf("lookup: %w", service.ErrProductNotFound), http.StatusNotFound, "Product not found"},
		{"sheet failure", `{"product_id":"P-1"}`, errors.New("append failed"), http.StatusInternalServerError, "Failed to record sale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sales := &fakeSaleService{recordFn: func(models.SaleInput) (*models.SaleResult, error) {
				return nil, tt.err
			}}
			c := NewPosController(sales, 8091)
			rec := httptest.NewRecorder()

			c.Sale(rec, httptest.NewRequest(http.MethodPost, "/pos/sale", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestLabel(t *testing.T) {
	sales := &fakeSaleService{products: map[string]map[string]string{
		"P-1": {"product_id": "P-1", "short_id": "A1", "name": "Honey", "base_price": "120"},
	}}
	c := NewPosController(sales, 8091)

	req := httptest.NewRequest(http.MethodGet, "/pos/label/P-1", nil)
	req.SetPathValue("product_id", "P-1")
	rec := httptest.NewRecorder()
	c.Label(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	req = httptest.NewRequest(http.MethodGet, "/pos/label/P-9", nil)
	req.SetPathValue("product_id", "P-9")
	rec = httptest.NewRecorder()
	c.Label(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSales(t *testing.T) {
	sales := &fakeSaleService{sales: []models.SaleRecord{{ID: "s1", ProductID: "P-1", Qty: 2, Total: 240}}}
	c := NewPosController(sales, 8091)

	rec := httptest.NewRecorder()
	c.ListSales(rec, httptest.NewRequest(http.MethodGet, "/pos/sales", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultSalesLimit, sales.salesLimit)
	var resp models.SaleListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Sales, 1)
	assert.Equal(t, "s1", resp.Sales[0].ID)

	rec = httptest.NewRecorder()
	c.ListSales(rec, httptest.NewRequest(http.MethodGet, "/pos/sales?limit=9999", nil))
	assert.Equal(t, maxSalesLimit, sales.salesLimit)

	rec = httptest.NewRecorder()
	c.ListSales(rec, httptest.NewRequest(http.MethodGet, "/pos/sales?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSalesWithoutLedger(t *testing.T) {
	c := NewPosController(&fakeSaleService{salesErr: repository.ErrLedgerDisabled}, 8091)
	rec := httptest.NewRecorder()

	c.ListSales(rec, httptest.NewRequest(http.MethodGet, "/pos/sales", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
