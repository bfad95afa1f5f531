package service

import (
	"context"
	"html/template"

	"pos-storefront/models"
)

type fakeBackend struct {
	fetchStockFunc func(ctx context.Context) ([]models.Product, error)
	submitSaleFunc func(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error)

	fetchCalls int
	saleCalls  int
	sales      []models.SaleRequest
}

func (f *fakeBackend) FetchStock(ctx context.Context) ([]models.Product, error) {
	f.fetchCalls++
	if f.fetchStockFunc != nil {
		return f.fetchStockFunc(ctx)
	}
	return nil, nil
}

func (f *fakeBackend) SubmitSale(ctx context.Context, sale models.SaleRequest) (*models.SaleResult, error) {
	f.saleCalls++
	f.sales = append(f.sales, sale)
	if f.submitSaleFunc != nil {
		return f.submitSaleFunc(ctx, sale)
	}
	return &models.SaleResult{Status: "ok"}, nil
}

type recordingView struct {
	renders map[string][]template.HTML
	notices []models.Notice
}

func newRecordingView() *recordingView {
	return &recordingView{renders: make(map[string][]template.HTML)}
}

func (v *recordingView) Render(elementID string, markup template.HTML) {
	v.renders[elementID] = append(v.renders[elementID], markup)
}

func (v *recordingView) Alert(notice models.Notice) {
	v.notices = append(v.notices, notice)
}

func (v *recordingView) last(elementID string) template.HTML {
	r := v.renders[elementID]
	if len(r) == 0 {
		return ""
	}
	return r[len(r)-1]
}

type fakeSheets struct {
	tabs     map[string][]map[string]string
	readErr  error
	appendFn func(tab string, row []interface{}) error
	appended map[string][][]interface{}
}

func newFakeSheets(tabs map[string][]map[string]string) *fakeSheets {
	return &fakeSheets{tabs: tabs, appended: make(map[string][][]interface{})}
}

func (f *fakeSheets) ReadTab(ctx context.Context, tab string) ([]map[string]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.tabs[tab], nil
}

func (f *fakeSheets) AppendRow(ctx context.Context, tab string, row []interface{}) error {
	if f.appendFn != nil {
		if err := f.appendFn(tab, row); err != nil {
			return err
		}
	}
	f.appended[tab] = append(f.appended[tab], row)
	return nil
}

type fakeLedger struct {
	inserted []models.SaleRecord
	insertFn func(sale *models.SaleRecord) error
	listFn   func(limit int) ([]models.SaleRecord, error)
}

func (f *fakeLedger) Insert(ctx context.Context, sale *models.SaleRecord) error {
	if f.insertFn != nil {
		if err := f.insertFn(sale); err != nil {
			return err
		}
	}
	f.inserted = append(f.inserted, *sale)
	return nil
}

func (f *fakeLedger) ListRecent(ctx context.Context, limit int) ([]models.SaleRecord, error) {
	if f.listFn != nil {
		return f.listFn(limit)
	}
	return f.inserted, nil
}

type fakePublisher struct {
	events []models.SaleEvent
	err    error
}

func (f *fakePublisher) PublishSale(ctx context.Context, event models.SaleEvent) error {
	f.events = append(f.events, event)
	return f.err
}
