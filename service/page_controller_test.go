package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-storefront/models"
)

func newTestPage(backend *fakeBackend) (*PageController, *recordingView) {
	view := newRecordingView()
	return NewPageController(backend, models.NewCart(), view), view
}

func TestAddToCartAppendsInOrder(t *testing.T) {
	page, view := newTestPage(&fakeBackend{})

	for i := 0; i < 4; i++ {
		require.NoError(t, page.AddToCart(fmt.Sprintf("P-%d", i), "", float64(i)))
	}

	lines := page.Cart().Lines()
	require.Len(t, lines, 4)
	for i, l := range lines {
		assert.Equal(t, fmt.Sprintf("P-%d", i), l.ProductID)
		assert.Equal(t, 1, l.Qty)
	}
	assert.Len(t, view.renders[ElementCartItems], 4, "every add re-renders the cart")
	assert.Contains(t, string(view.last(ElementCartItems)), "P-3 x 1 = 3.00 NOK")
}

func TestIncrementDecrement(t *testing.T) {
	page, view := newTestPage(&fakeBackend{})
	require.NoError(t, page.AddToCart("P-1", "A1", 12.5))
	require.NoError(t, page.AddToCart("P-2", "B2", 4))

	require.NoError(t, page.Increment(0))
	require.NoError(t, page.Increment(0))
	assert.Contains(t, string(view.last(ElementCartItems)), "P-1 x 3 = 37.50 NOK")

	for i := 0; i < 5; i++ {
		require.NoError(t, page.Decrement(0))
	}
	lines := page.Cart().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Qty)
	assert.Equal(t, "P-1", lines[0].ProductID)
	assert.Equal(t, "P-2", lines[1].ProductID)
}

func TestIncrementUnknownIndex(t *testing.T) {
	page, view := newTestPage(&fakeBackend{})

	assert.ErrorIs(t, page.Increment(0), models.ErrLineNotFound)
	assert.ErrorIs(t, page.Decrement(3), models.ErrLineNotFound)
	assert.Empty(t, view.renders[ElementCartItems])
}

func TestCheckoutEmptyCartMakesNoCall(t *testing.T) {
	backend := &fakeBackend{}
	page, view := newTestPage(backend)

	assert.Equal(t, CheckoutEmpty, page.CheckoutState())
	require.NoError(t, page.Checkout(context.Background()))

	assert.Equal(t, 0, backend.saleCalls)
	assert.Equal(t, 0, page.Cart().Len())
	require.Len(t, view.notices, 1)
	assert.Equal(t, models.Notice{Kind: models.NoticeWarning, Message: "Cart empty"}, view.notices[0])
}

func TestCheckoutSendsOnlyFirstLine(t *testing.T) {
	backend := &fakeBackend{}
	page, _ := newTestPage(backend)
	require.NoError(t, page.AddToCart("P-1", "A1", 10))
	require.NoError(t, page.AddToCart("P-2", "B2", 20))
	require.NoError(t, page.AddToCart("P-3", "C3", 30))
	require.NoError(t, page.Increment(0))
	require.NoError(t, page.Increment(1))
	require.NoError(t, page.Increment(1))

	assert.Equal(t, CheckoutIdle, page.CheckoutState())
	require.NoError(t, page.Checkout(context.Background()))

	require.Equal(t, 1, backend.saleCalls)
	assert.Equal(t, models.SaleRequest{
		ResellerID:    "",
		ProductID:     "P-1",
		ShortID:       "A1",
		Qty:           2,
		CustomerID:    "C-000",
		PaymentMethod: "cash",
	}, backend.sales[0])
}

func TestCheckoutSuccessClearsCart(t *testing.T) {
	backend := &fakeBackend{
		submitSaleFunc: func(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
			return &models.SaleResult{Status: "ok", Total: 150}, nil
		},
	}
	page, view := newTestPage(backend)
	require.NoError(t, page.AddToCart("P-1", "A1", 75))
	require.NoError(t, page.AddToCart("P-2", "B2", 5))

	require.NoError(t, page.Checkout(context.Background()))

	assert.Equal(t, 0, page.Cart().Len())
	assert.Equal(t, CheckoutEmpty, page.CheckoutState())
	require.Len(t, view.notices, 1)
	assert.Equal(t, models.NoticeInfo, view.notices[0].Kind)
	assert.Contains(t, view.notices[0].Message, "150")
	assert.Equal(t, "Sale OK. Total: 150 NOK", view.notices[0].Message)
	assert.NotContains(t, string(view.last(ElementCartItems)), "cart-line")
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	backend := &fakeBackend{
		submitSaleFunc: func(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
			return nil, &SaleFailureError{StatusCode: 409, Body: "out of stock"}
		},
	}
	page, view := newTestPage(backend)
	require.NoError(t, page.AddToCart("P-1", "A1", 75))
	require.NoError(t, page.Increment(0))
	before := page.Cart().Lines()

	err := page.Checkout(context.Background())

	var saleErr *SaleFailureError
	require.True(t, errors.As(err, &saleErr))
	assert.Equal(t, before, page.Cart().Lines())
	require.Len(t, view.notices, 1)
	assert.Equal(t, models.NoticeError, view.notices[0].Kind)
	assert.Contains(t, view.notices[0].Message, "out of stock")
}

func TestCheckoutTransportErrorIsReturned(t *testing.T) {
	backend := &fakeBackend{
		submitSaleFunc: func(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
			return nil, errors.New("connection refused")
		},
	}
	page, view := newTestPage(backend)
	require.NoError(t, page.AddToCart("P-1", "", 1))

	assert.Error(t, page.Checkout(context.Background()))
	assert.Equal(t, 1, page.Cart().Len())
	assert.Empty(t, view.notices)
}

func TestLoadCatalogReplacesCatalog(t *testing.T) {
	calls := 0
	backend := &fakeBackend{
		fetchStockFunc: func(ctx context.Context) ([]models.Product, error) {
			calls++
			if calls == 1 {
				return []models.Product{{ProductID: "P-1", Name: "Honey"}, {ProductID: "P-2"}}, nil
			}
			return []models.Product{{ProductID: "P-9", Name: "Wax"}}, nil
		},
	}
	page, view := newTestPage(backend)

	require.NoError(t, page.LoadCatalog(context.Background()))
	assert.Len(t, page.Catalog(), 2)
	assert.Contains(t, string(view.last(ElementCatalog)), "Honey")

	require.NoError(t, page.LoadCatalog(context.Background()))
	markup := string(view.last(ElementCatalog))
	assert.Contains(t, markup, "Wax")
	assert.NotContains(t, markup, "Honey")
	assert.Equal(t, 1, strings.Count(markup, `class="card"`))
}

func TestLoadCatalogFailureKeepsPriorCatalog(t *testing.T) {
	fail := false
	backend := &fakeBackend{
		fetchStockFunc: func(ctx context.Context) ([]models.Product, error) {
			if fail {
				return nil, &StockLoadError{StatusCode: 500}
			}
			return []models.Product{{ProductID: "P-1", Name: "Honey"}}, nil
		},
	}
	page, view := newTestPage(backend)
	require.NoError(t, page.LoadCatalog(context.Background()))
	rendersBefore := len(view.renders[ElementCatalog])

	fail = true
	err := page.LoadCatalog(context.Background())

	var loadErr *StockLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, []models.Product{{ProductID: "P-1", Name: "Honey"}}, page.Catalog())
	assert.Len(t, view.renders[ElementCatalog], rendersBefore)
	require.Len(t, view.notices, 1)
	assert.Equal(t, "Failed to load stock", view.notices[0].Message)
}

func TestRenderAll(t *testing.T) {
	page, view := newTestPage(&fakeBackend{})

	require.NoError(t, page.RenderAll())

	assert.Len(t, view.renders[ElementCatalog], 1)
	assert.Len(t, view.renders[ElementCartItems], 1)
}
