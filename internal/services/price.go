package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "not a valid amount"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return d, nil
}
