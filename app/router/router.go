package router

import (
	"net/http"

	"pos-storefront/app/controller"
	"pos-storefront/app/middleware"
)

// Controllers groups the controllers of the enabled roles; a nil controller registers no routes
type Controllers struct {
	Storefront *controller.StorefrontController
	Pos        *controller.PosController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every enabled route on mux
func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("GET /ping", pingHandler)

	if s := controllers.Storefront; s != nil {
		// Page
		mux.HandleFunc("GET /{$}", s.Root)
		mux.HandleFunc("GET /index.html", s.Index)
		mux.HandleFunc("GET /config.js", s.ConfigJS)

		// Catalog
		mux.HandleFunc("POST /catalog/refresh", s.RefreshCatalog)
		mux.HandleFunc("GET /catalog/print", s.PrintCatalog)
		mux.HandleFunc("GET /catalog/pdf", s.CatalogPDF)

		// Cart
		mux.HandleFunc("POST /cart/add", s.AddToCart)
		mux.HandleFunc("POST /cart/items/{index}/increment", s.Increment)
		mux.HandleFunc("POST /cart/items/{index}/decrement", s.Decrement)

		// Checkout
		mux.HandleFunc("POST /checkout", s.Checkout)
		mux.HandleFunc("POST /session/reset", s.ResetSession)
	}

	if p := controllers.Pos; p != nil {
		mux.HandleFunc("GET /health", p.Health)

		// Backend API, callable from pages on other origins
		mux.Handle("/pos/stock", middleware.CORS(methodOnly(http.MethodGet, p.Stock)))
		mux.Handle("/pos/sale", middleware.CORS(methodOnly(http.MethodPost, p.Sale)))
		mux.Handle("/pos/sales", middleware.CORS(methodOnly(http.MethodGet, p.ListSales)))
		mux.Handle("/pos/label/{product_id}", middleware.CORS(methodOnly(http.MethodGet, p.Label)))
	}
}

// methodOnly rejects every method but the given one.
// Routes wrapped by CORS are registered without a method so preflight OPTIONS reaches it.
func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
