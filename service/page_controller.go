package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pos-storefront/models"
	"pos-storefront/utils"
)

// Notice texts shown at the terminal
const (
	MessageStockLoadFailed = "Failed to load stock"
	MessageCartEmpty       = "Cart empty"
	MessageSaleFailed      = "Sale failed: "
	MessageSaleOK          = "Sale OK. Total: %s NOK"
)

// CheckoutState is the state of the checkout flow
type CheckoutState int

const (
	// CheckoutEmpty means the cart has no lines; checkout only warns
	CheckoutEmpty CheckoutState = iota
	// CheckoutIdle means the cart has at least one line and can be submitted
	CheckoutIdle
)

func (s CheckoutState) String() string {
	if s == CheckoutIdle {
		return "idle"
	}
	return "empty"
}

// PageController drives one storefront page: catalog loading, the cart and checkout.
// It is not safe for concurrent use; callers serialise interactions (see Terminal).
type PageController struct {
	client  BackendClientInterface
	cart    *models.Cart
	view    View
	catalog []models.Product
}

// NewPageController creates a PageController over an explicitly owned cart
func NewPageController(client BackendClientInterface, cart *models.Cart, view View) *PageController {
	return &PageController{
		client: client,
		cart:   cart,
		view:   view,
	}
}

// Catalog returns the products currently displayed
func (p *PageController) Catalog() []models.Product {
	out := make([]models.Product, len(p.catalog))
	copy(out, p.catalog)
	return out
}

// Cart returns the cart owned by this page
func (p *PageController) Cart() *models.Cart {
	return p.cart
}

// RenderAll renders the catalog and the cart from current state
func (p *PageController) RenderAll() error {
	if err := p.renderCatalog(); err != nil {
		return err
	}
	return p.renderCart()
}

func (p *PageController) renderCatalog() error {
	markup, err := RenderCatalog(p.catalog)
	if err != nil {
		return err
	}
	p.view.Render(ElementCatalog, markup)
	return nil
}

func (p *PageController) renderCart() error {
	markup, err := RenderCart(p.cart.Lines())
	if err != nil {
		return err
	}
	p.view.Render(ElementCartItems, markup)
	return nil
}

// LoadCatalog fetches the stock list and replaces the displayed catalog.
// A non-success response alerts and keeps the prior catalog; other failures are returned as is.
func (p *PageController) LoadCatalog(ctx context.Context) error {
	products, err := p.client.FetchStock(ctx)
	if err != nil {
		var loadErr *StockLoadError
		if errors.As(err, &loadErr) {
			p.view.Alert(models.Notice{Kind: models.NoticeError, Message: MessageStockLoadFailed})
		}
		return err
	}

	p.catalog = products
	log.Printf("✅ LoadCatalog: %d products loaded", len(products))
	return p.renderCatalog()
}

// AddToCart appends a new line with qty=1 and re-renders the cart
func (p *PageController) AddToCart(productID, shortID string, price float64) error {
	p.cart.Add(productID, shortID, price)
	return p.renderCart()
}

// Increment adds one unit to the line at index and re-renders the cart
func (p *PageController) Increment(index int) error {
	if err := p.cart.Increment(index); err != nil {
		return err
	}
	return p.renderCart()
}

// Decrement removes one unit from the line at index (floor 1) and re-renders the cart
func (p *PageController) Decrement(index int) error {
	if err := p.cart.Decrement(index); err != nil {
		return err
	}
	return p.renderCart()
}

// CheckoutState reports whether the cart can be submitted
func (p *PageController) CheckoutState() CheckoutState {
	if p.cart.Len() == 0 {
		return CheckoutEmpty
	}
	return CheckoutIdle
}

// Checkout submits the FIRST cart line as a sale. Remaining lines are not sent.
// On success the whole cart is cleared; on a sale failure the cart is left as is.
func (p *PageController) Checkout(ctx context.Context) error {
	line, ok := p.cart.First()
	if !ok {
		p.view.Alert(models.Notice{Kind: models.NoticeWarning, Message: MessageCartEmpty})
		return nil
	}

	if p.cart.Len() > 1 {
		log.Printf("⚠️  Checkout: cart has %d lines, only the first is submitted", p.cart.Len())
	}

	result, err := p.client.SubmitSale(ctx, models.NewSaleRequest(line))
	if err != nil {
		var saleErr *SaleFailureError
		if errors.As(err, &saleErr) {
			p.view.Alert(models.Notice{Kind: models.NoticeError, Message: MessageSaleFailed + saleErr.Body})
		}
		return err
	}

	total := utils.FormatAmount(result.Total)
	p.view.Alert(models.Notice{Kind: models.NoticeInfo, Message: fmt.Sprintf(MessageSaleOK, total)})
	p.cart.Clear()
	return p.renderCart()
}
