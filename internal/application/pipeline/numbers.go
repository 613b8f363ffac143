package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarkers = strings.NewReplacer(
	",", "",
	"₹", "",
	"$", "",
	"€", "",
	"£", "",
	"INR", "",
	"inr", "",
	"Rs.", "",
	"rs.", "",
	"Rs", "",
	"rs", "",
)

// ParseAmount parses a numeric cell, accepting thousands separators, currency
// markers and accounting negatives like "(1,200)". Empty cells yield zero with ok=true;
// unparseable cells yield zero with ok=false.
func ParseAmount(value string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero, true
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.TrimSpace(currencyMarkers.Replace(s))

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

func isNumber(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	_, ok := ParseAmount(value)
	return ok
}
