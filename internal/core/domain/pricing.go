package domain

import (
	"fmt"
	"math"
)

// CurrentPrice is the price to display: the resolved variant's price,
// or the product base price while the selection is incomplete.
func CurrentPrice(p Product, v Variant, resolved bool) float64 {
	if resolved {
		return v.Price
	}
	return p.Price
}

// CurrentCompareAt is the original price to strike through, if any.
func CurrentCompareAt(p Product, v Variant, resolved bool) *float64 {
	if resolved && v.CompareAt != nil {
		return v.CompareAt
	}
	return p.CompareAt
}

// DiscountPercentage derives the percentage badge. The second result
// is false unless compareAt is present and compareAt > price > 0.
// The value is rounded and clamped to [0, 100].
func DiscountPercentage(price float64, compareAt *float64) (int, bool) {
	if compareAt == nil || price <= 0 || *compareAt <= price {
		return 0, false
	}
	pct := int(math.Round((*compareAt - price) / *compareAt * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct, true
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders an amount for display. A nil amount formats
// as zero rather than failing.
func FormatMoney(amount *float64, currency string) string {
	var a float64
	if amount != nil {
		a = *amount
	}
	if sym, ok := currencySymbols[currency]; ok {
		return fmt.Sprintf("%s%.2f", sym, a)
	}
	return fmt.Sprintf("%.2f %s", a, currency)
}
