package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pos-storefront/models"
)

// BackendURLProvider yields the backend origin at call time
type BackendURLProvider interface {
	BackendURL() string
}

// StockLoadError is returned when GET /pos/stock answers with a non-success status
type StockLoadError struct {
	StatusCode int
}

func (e *StockLoadError) Error() string {
	return fmt.Sprintf("stock load failed: status %d", e.StatusCode)
}

// SaleFailureError is returned when POST /pos/sale answers with a non-success status.
// Body holds the response text as sent by the backend.
type SaleFailureError struct {
	StatusCode int
	Body       string
}

func (e *SaleFailureError) Error() string {
	return fmt.Sprintf("sale failed: status %d: %s", e.StatusCode, e.Body)
}

// BackendClient talks to the POS backend
type BackendClient struct {
	urls BackendURLProvider
	http *http.Client
}

// NewBackendClient creates a new BackendClient. A nil httpClient uses http.DefaultClient.
func NewBackendClient(urls BackendURLProvider, httpClient *http.Client) *BackendClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BackendClient{urls: urls, http: httpClient}
}

// Ensure BackendClient implements BackendClientInterface
var _ BackendClientInterface = (*BackendClient)(nil)

func (c *BackendClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	url := c.urls.BackendURL() + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// FetchStock issues GET {backend_url}/pos/stock and decodes the product list
func (c *BackendClient) FetchStock(ctx context.Context) ([]models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, "/pos/stock", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StockLoadError{StatusCode: resp.StatusCode}
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode stock: %w", err)
	}
	return products, nil
}

// SubmitSale issues POST {backend_url}/pos/sale with the JSON-encoded request
func (c *BackendClient) SubmitSale(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
	payload, err := json.Marshal(sale)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sale: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/pos/sale", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to submit sale: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read sale failure body: %w", err)
		}
		return nil, &SaleFailureError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	var result models.SaleResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode sale result: %w", err)
	}
	return &result, nil
}
