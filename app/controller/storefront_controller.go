package controller

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"pos-storefront/models"
	"pos-storefront/service"
)

// TerminalCookie carries the terminal id of a browser
const TerminalCookie = "pos_terminal"

// StorefrontController serves the POS storefront page and its actions
type StorefrontController struct {
	terminals  *service.TerminalStore
	client     service.BackendClientInterface
	priceList  service.PriceListServiceInterface
	backendURL service.BackendURLProvider
}

// NewStorefrontController creates a new StorefrontController
func NewStorefrontController(
	terminals *service.TerminalStore,
	client service.BackendClientInterface,
	priceList service.PriceListServiceInterface,
	backendURL service.BackendURLProvider,
) *StorefrontController {
	return &StorefrontController{
		terminals:  terminals,
		client:     client,
		priceList:  priceList,
		backendURL: backendURL,
	}
}

// terminal returns the caller's terminal, opening a new one (and setting its cookie) when needed
func (c *StorefrontController) terminal(w http.ResponseWriter, r *http.Request) *service.Terminal {
	if cookie, err := r.Cookie(TerminalCookie); err == nil {
		if t, ok := c.terminals.Get(cookie.Value); ok {
			return t
		}
	}

	t := c.terminals.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     TerminalCookie,
		Value:    t.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Printf("🆕 Terminal opened: %s", t.ID)
	return t
}

// withTerminal runs fn holding the terminal lock, after the startup catalog load of a new terminal
func (c *StorefrontController) withTerminal(w http.ResponseWriter, r *http.Request, fn func(t *service.Terminal)) {
	t := c.terminal(w, r)
	t.Lock()
	defer t.Unlock()

	if t.NeedsCatalog() {
		t.MarkCatalogLoaded()
		if err := t.Controller.RenderAll(); err != nil {
			log.Printf("❌ Storefront: Error rendering terminal %s: %v", t.ID, err)
		}
		if err := t.Controller.LoadCatalog(r.Context()); err != nil {
			log.Printf("❌ Storefront: Error loading catalog: %v", err)
		}
	}
	fn(t)
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index.html", http.StatusSeeOther)
}

// Root handles GET /
func (c *StorefrontController) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/index.html", http.StatusTemporaryRedirect)
}

// Index handles GET /index.html
func (c *StorefrontController) Index(w http.ResponseWriter, r *http.Request) {
	c.withTerminal(w, r, func(t *service.Terminal) {
		page, err := service.RenderPage(service.PageData{
			Notices: t.View.DrainNotices(),
			Catalog: t.View.Element(service.ElementCatalog),
			Cart:    t.View.Element(service.ElementCartItems),
		})
		if err != nil {
			log.Printf("❌ Index: Error rendering page: %v", err)
			http.Error(w, fmt.Sprintf("Failed to render page: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(page)); err != nil {
			log.Printf("❌ Index: Error writing response: %v", err)
		}
	})
}

// RefreshCatalog handles POST /catalog/refresh
func (c *StorefrontController) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	c.withTerminal(w, r, func(t *service.Terminal) {
		if err := t.Controller.LoadCatalog(r.Context()); err != nil {
			log.Printf("❌ RefreshCatalog: %v", err)
		}
		backToPage(w, r)
	})
}

// AddToCart handles POST /cart/add (form: product_id, short_id, price)
func (c *StorefrontController) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("Invalid form: %v", err), http.StatusBadRequest)
		return
	}
	productID := r.PostForm.Get("product_id")
	shortID := r.PostForm.Get("short_id")
	price, err := strconv.ParseFloat(r.PostForm.Get("price"), 64)
	if err != nil {
		price = 0
	}

	c.withTerminal(w, r, func(t *service.Terminal) {
		if err := t.Controller.AddToCart(productID, shortID, price); err != nil {
			log.Printf("❌ AddToCart: %v", err)
		}
		backToPage(w, r)
	})
}

func lineIndex(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("index"))
}

// Increment handles POST /cart/items/{index}/increment
func (c *StorefrontController) Increment(w http.ResponseWriter, r *http.Request) {
	c.changeQty(w, r, (*service.PageController).Increment)
}

// Decrement handles POST /cart/items/{index}/decrement
func (c *StorefrontController) Decrement(w http.ResponseWriter, r *http.Request) {
	c.changeQty(w, r, (*service.PageController).Decrement)
}

func (c *StorefrontController) changeQty(w http.ResponseWriter, r *http.Request, op func(*service.PageController, int) error) {
	index, err := lineIndex(r)
	if err != nil {
		http.Error(w, "invalid cart line index", http.StatusBadRequest)
		return
	}

	c.withTerminal(w, r, func(t *service.Terminal) {
		if err := op(t.Controller, index); err != nil {
			if errors.Is(err, models.ErrLineNotFound) {
				t.View.Alert(models.Notice{Kind: models.NoticeWarning, Message: "Cart line not found"})
			} else {
				log.Printf("❌ Cart: %v", err)
			}
		}
		backToPage(w, r)
	})
}

// Checkout handles POST /checkout
func (c *StorefrontController) Checkout(w http.ResponseWriter, r *http.Request) {
	c.withTerminal(w, r, func(t *service.Terminal) {
		err := t.Controller.Checkout(r.Context())
		if err == nil {
			backToPage(w, r)
			return
		}

		var saleErr *service.SaleFailureError
		if errors.As(err, &saleErr) {
			log.Printf("⚠️  Checkout: %v", err)
			backToPage(w, r)
			return
		}

		log.Printf("❌ Checkout: %v", err)
		http.Error(w, fmt.Sprintf("Checkout error: %v", err), http.StatusBadGateway)
	})
}

// ResetSession handles POST /session/reset: the terminal and its cart are dropped
func (c *StorefrontController) ResetSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(TerminalCookie); err == nil {
		c.terminals.Remove(cookie.Value)
		log.Printf("🗑️  Terminal closed: %s", cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: TerminalCookie, Value: "", Path: "/", MaxAge: -1})
	backToPage(w, r)
}

// ConfigJS handles GET /config.js
func (c *StorefrontController) ConfigJS(w http.ResponseWriter, r *http.Request) {
	url := template.JSEscapeString(c.backendURL.BackendURL())
	w.Header().Set("Content-Type", "application/javascript")
	fmt.Fprintf(w, "window.config={backend_url:'%s'}", url)
}

// PrintCatalog handles GET /catalog/print
func (c *StorefrontController) PrintCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := c.client.FetchStock(r.Context())
	if err != nil {
		log.Printf("❌ PrintCatalog: %v", err)
		http.Error(w, service.MessageStockLoadFailed, http.StatusBadGateway)
		return
	}

	page, err := service.RenderPriceList(products, time.Now())
	if err != nil {
		log.Printf("❌ PrintCatalog: Error rendering: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render price list: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		log.Printf("❌ PrintCatalog: Error writing response: %v", err)
	}
}

// CatalogPDF handles GET /catalog/pdf
func (c *StorefrontController) CatalogPDF(w http.ResponseWriter, r *http.Request) {
	pdfData, err := c.priceList.GeneratePDF(r.Context())
	if err != nil {
		log.Printf("❌ CatalogPDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="price_list.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		log.Printf("❌ CatalogPDF: Error writing PDF response: %v", err)
	}
}
