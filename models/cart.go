package models

import "errors"

// ErrLineNotFound is returned when a cart index does not address an existing line
var ErrLineNotFound = errors.New("cart line not found")

// CartLine represents one product/quantity pairing pending sale
type CartLine struct {
	ProductID string  `json:"product_id"`
	ShortID   string  `json:"short_id"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Label returns the identifier shown for the line: product_id, falling back to short_id
func (l CartLine) Label() string {
	if l.ProductID != "" {
		return l.ProductID
	}
	return l.ShortID
}

// Subtotal returns qty * price
func (l CartLine) Subtotal() float64 {
	return float64(l.Qty) * l.Price
}

// Cart is an ordered sequence of cart lines; insertion order is display order.
// Every line keeps qty >= 1: Decrement floors at 1 and never removes a line.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// Add appends a new line with qty=1 to the end of the cart
func (c *Cart) Add(productID, shortID string, price float64) {
	c.lines = append(c.lines, CartLine{
		ProductID: productID,
		ShortID:   shortID,
		Price:     price,
		Qty:       1,
	})
}

// Increment adds one unit to the line at index
func (c *Cart) Increment(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines[index].Qty++
	return nil
}

// Decrement removes one unit from the line at index, never going below 1
func (c *Cart) Decrement(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	if c.lines[index].Qty > 1 {
		c.lines[index].Qty--
	}
	return nil
}

// Lines returns a copy of the cart lines in display order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// First returns the first line; ok is false for an empty cart
func (c *Cart) First() (line CartLine, ok bool) {
	if len(c.lines) == 0 {
		return CartLine{}, false
	}
	return c.lines[0], true
}

// Clear drops every line
func (c *Cart) Clear() {
	c.lines = nil
}
