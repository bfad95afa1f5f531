package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PriceListServiceInterface defines the contract for printing the price list
type PriceListServiceInterface interface {
	GeneratePDF(ctx context.Context) ([]byte, error)
}

// PriceListService prints the storefront's price list page to PDF with headless Chrome
type PriceListService struct {
	baseURL string // Base URL the browser uses to reach this server (e.g., "http://localhost:8095")
	timeout time.Duration
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(baseURL string) *PriceListService {
	return &PriceListService{
		baseURL: baseURL,
		timeout: 30 * time.Second,
	}
}

// Ensure PriceListService implements PriceListServiceInterface
var _ PriceListServiceInterface = (*PriceListService)(nil)

// chromeCandidates are checked in order when CHROME_PATH is not set
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath returns CHROME_PATH when it exists, else the first installed candidate, else ""
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}
	for _, path := range chromeCandidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PrintURL returns the page the browser prints
func (s *PriceListService) PrintURL() string {
	return s.baseURL + "/catalog/print"
}

// GeneratePDF navigates headless Chrome to the price list page and prints it on A4
func (s *PriceListService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.PrintURL()
	log.Printf("🖨️  GeneratePDF: printing %s", renderURL)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
