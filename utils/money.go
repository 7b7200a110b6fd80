package utils

import (
	"fmt"
	"math"
)

// Round rounds a currency amount to cents.
func Round(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatMoney renders an amount for emails and logs.
func FormatMoney(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}
