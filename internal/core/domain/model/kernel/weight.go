package kernel

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const weightPrecision = 2

var (
	MinOrderWeight = decimal.RequireFromString("0.01")
	MaxOrderWeight = decimal.RequireFromString("50")

	ErrWeightPrecision = errors.New("weight must have at most two decimal digits")
)

// NewOrderWeight validates an order weight: 0.01 <= w <= 50.00 with at most
// two fractional digits.
func NewOrderWeight(w decimal.Decimal) (decimal.Decimal, error) {
	if w.LessThan(MinOrderWeight) || w.GreaterThan(MaxOrderWeight) {
		return decimal.Decimal{}, errs.NewValueIsOutOfRangeError("weight", w, MinOrderWeight, MaxOrderWeight)
	}
	if !w.Equal(w.Truncate(weightPrecision)) {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause("weight", ErrWeightPrecision)
	}
	return w, nil
}

// ParseOrderWeight accepts a JSON number literal ("1.5", "12") and rejects
// strings, booleans and exponent forms.
func ParseOrderWeight(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, `"eE`) {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(
			"weight", fmt.Errorf("%q is not a plain number", raw))
	}
	w, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}
	return NewOrderWeight(w)
}
