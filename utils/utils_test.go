package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDicts(t *testing.T) {
	rows := [][]interface{}{
		{"product_id", "short_id", "base_price"},
		{"P-1", "A1", "120"},
		{"P-2"},
		{"P-3", "C3", 45.5},
	}

	got := ToDicts(rows)

	assert.Equal(t, []map[string]string{
		{"product_id": "P-1", "short_id": "A1", "base_price": "120"},
		{"product_id": "P-2", "short_id": "", "base_price": ""},
		{"product_id": "P-3", "short_id": "C3", "base_price": "45.5"},
	}, got)
}

func TestToDictsEmpty(t *testing.T) {
	assert.Empty(t, ToDicts(nil))
	assert.Empty(t, ToDicts([][]interface{}{{"product_id"}}))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150", FormatAmount(150))
	assert.Equal(t, "35.5", FormatAmount(35.5))
	assert.Equal(t, "3.00", FormatMoney(3))
	assert.Equal(t, "59.97", FormatMoney(59.97))
}
