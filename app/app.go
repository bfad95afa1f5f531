package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"pos-storefront/app/controller"
	"pos-storefront/app/router"
	"pos-storefront/config"
	"pos-storefront/db"
	"pos-storefront/repository"
	"pos-storefront/service"
)

// Roles selectable with POS_ROLE
const (
	RoleStorefront = "storefront"
	RoleBackend    = "backend"
	RoleAll        = "all"
)

// DefaultPort returns the listen port used by role when PORT is unset
func DefaultPort(role string) int {
	switch role {
	case RoleBackend:
		return 8091
	case RoleAll:
		return 8080
	default:
		return 8095
	}
}

// App holds the wired HTTP handler and everything that must be closed on shutdown
type App struct {
	Handler http.Handler
	closers []io.Closer
	cancel  context.CancelFunc
}

// Close stops background work and releases connections
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("⚠️  Error closing: %v", err)
		}
	}
	if err := db.CloseDB(); err != nil {
		log.Printf("⚠️  Error closing database: %v", err)
	}
}

// Initialize initializes the application for role, listening on port
func Initialize(role string, port int) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{cancel: cancel}
	controllers := &router.Controllers{}
	optionsPath := config.OptionsPath()

	if role == RoleBackend || role == RoleAll {
		pos, err := a.initBackend(ctx, optionsPath, port)
		if err != nil {
			a.Close()
			return nil, err
		}
		controllers.Pos = pos
	}

	if role == RoleStorefront || role == RoleAll {
		urls := config.NewBackendURLSource(optionsPath)
		if role == RoleAll && os.Getenv("BACKEND_URL") == "" {
			urls.Fallback = fmt.Sprintf("http://localhost:%d", port)
		}
		controllers.Storefront = a.initStorefront(ctx, urls, port)
	}

	if controllers.Pos == nil && controllers.Storefront == nil {
		a.Close()
		return nil, fmt.Errorf("unknown POS_ROLE %q (use %s, %s or %s)", role, RoleStorefront, RoleBackend, RoleAll)
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	a.Handler = mux
	return a, nil
}

func (a *App) initBackend(ctx context.Context, optionsPath string, port int) (*controller.PosController, error) {
	settings, err := config.LoadBackendSettings(optionsPath)
	if err != nil {
		return nil, err
	}

	sheets, err := service.NewSheetsService(ctx, settings.CredentialsPath, settings.SheetID)
	if err != nil {
		return nil, err
	}

	// The Postgres ledger is optional
	var ledger repository.SaleRepositoryInterface
	if db.Configured() {
		if err := db.InitDB(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		ledger = repository.NewSaleRepository()
	} else {
		log.Printf("ℹ️  No database configured, sales ledger disabled")
	}

	haURL := os.Getenv("HA_URL")
	if haURL == "" {
		haURL = service.DefaultHomeAssistantURL
	}
	publishers := service.MultiPublisher{service.NewHomeAssistantPublisher(haURL, settings.HAEvent)}
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpPub, err := service.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Printf("⚠️  AMQP publisher disabled: %v", err)
		} else {
			publishers = append(publishers, amqpPub)
			a.closers = append(a.closers, amqpPub)
		}
	}

	sales := service.NewSaleService(sheets, ledger, publishers)
	log.Printf("✅ POS backend ready (sheet %s, event %s)", settings.SheetID, settings.HAEvent)
	return controller.NewPosController(sales, port), nil
}

func (a *App) initStorefront(ctx context.Context, urls *config.BackendURLSource, port int) *controller.StorefrontController {
	client := service.NewBackendClient(urls, nil)
	terminals := service.NewTerminalStore(client)

	ttl := config.TerminalTTL()
	go sweepTerminals(ctx, terminals, ttl)

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}
	priceList := service.NewPriceListService(baseURL)

	log.Printf("✅ Storefront ready (backend %s, terminal ttl %s)", urls.BackendURL(), ttl)
	return controller.NewStorefrontController(terminals, client, priceList, urls)
}

// sweepTerminals drops idle terminals until ctx is done
func sweepTerminals(ctx context.Context, terminals *service.TerminalStore, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := terminals.Sweep(ttl); n > 0 {
				log.Printf("🧹 Swept %d idle terminals", n)
			}
		}
	}
}
