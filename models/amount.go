package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a lenient numeric value as served by the POS backend.
// Sheet-backed endpoints send numbers as strings ("120", "99.5"), others send JSON numbers.
// Raw keeps the text as received for display; Value is the coerced number (0 when absent or non-numeric).
type Amount struct {
	Raw     string
	Value   float64
	Present bool
	number  bool
	parsed  bool
}

// NewAmount builds a present Amount from a float
func NewAmount(v float64) Amount {
	return Amount{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, Present: true, number: true, parsed: true}
}

// ParseAmount coerces free text into an Amount
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	a := Amount{Raw: s, Present: true}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		a.Value = v
		a.parsed = true
	}
	return a
}

// UnmarshalJSON accepts numbers, strings and null
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = ParseAmount(n.String())
	a.number = true
	return nil
}

// Float returns the numeric value and whether the raw text was a valid number
func (a Amount) Float() (float64, bool) {
	return a.Value, a.parsed
}

// MarshalJSON writes the amount back as a number, or null when absent
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.Value, 'f', -1, 64)), nil
}

// Display returns the price text shown on a card.
// Absent values, empty strings and a numeric zero display as blank; strings are shown as sent.
func (a Amount) Display() string {
	if !a.Present || (a.number && a.Value == 0) {
		return ""
	}
	return a.Raw
}
