package utils

import "strconv"

// FormatAmount formats an amount the shortest way that round-trips: 150 -> "150", 35.5 -> "35.5".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatMoney formats an amount with exactly two decimals: 59.97 -> "59.97", 3 -> "3.00".
func FormatMoney(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
