package calculator

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-entered currency or percentage value.
// Blank, non-numeric and negative input all yield 0; the caller is
// responsible for disabling confirmation when a required field is invalid.
func ParseAmount(s string) float64 {
	d, ok := parseDecimal(s)
	if !ok || d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// TotalWithTaxAndTip returns bill + tax + bill*tipPercent/100.
// Negative inputs count as 0.
func TotalWithTaxAndTip(bill, tax, tipPercent float64) float64 {
	bill, tax, tipPercent = nonNegative(bill), nonNegative(tax), nonNegative(tipPercent)
	return bill + tax + (bill * tipPercent / 100)
}

// BillInput holds the raw bill fields as typed by the user.
type BillInput struct {
	Bill       string
	Tax        string
	TipPercent string
}

// Total parses every field and returns the bill including tax and tip.
func (in BillInput) Total() float64 {
	return TotalWithTaxAndTip(ParseAmount(in.Bill), ParseAmount(in.Tax), ParseAmount(in.TipPercent))
}

// Valid reports whether the bill field holds a number. Tax and tip are optional.
func (in BillInput) Valid() bool {
	_, ok := parseDecimal(in.Bill)
	return ok
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
