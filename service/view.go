package service

import (
	"html/template"

	"pos-storefront/models"
)

// Element IDs of the storefront page
const (
	ElementCatalog     = "catalog"
	ElementCartItems   = "cartItems"
	ElementCheckoutBtn = "checkoutBtn"
)

// View receives rendered markup for page elements and user-visible notices
type View interface {
	Render(elementID string, markup template.HTML)
	Alert(notice models.Notice)
}

// PageView keeps the current markup of each element and the notices not yet shown
type PageView struct {
	elements map[string]template.HTML
	notices  []models.Notice
}

// NewPageView creates an empty PageView
func NewPageView() *PageView {
	return &PageView{elements: make(map[string]template.HTML)}
}

// Ensure PageView implements View
var _ View = (*PageView)(nil)

// Render replaces the element's markup
func (v *PageView) Render(elementID string, markup template.HTML) {
	v.elements[elementID] = markup
}

// Alert queues a notice for the next page render
func (v *PageView) Alert(notice models.Notice) {
	v.notices = append(v.notices, notice)
}

// Element returns the current markup of an element
func (v *PageView) Element(elementID string) template.HTML {
	return v.elements[elementID]
}

// DrainNotices returns the queued notices and forgets them
func (v *PageView) DrainNotices() []models.Notice {
	n := v.notices
	v.notices = nil
	return n
}
