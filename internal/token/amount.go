package token

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/movewise/swap-router/internal/apperror"
)

// The quote pipeline computes in float64 and truncates at the boundary.
// Keeping every format in this file means a later fixed-point upgrade is a
// one-place change.

// FormatOutput renders an output amount with 6 decimal places.
func FormatOutput(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// FormatPercent renders a percentage with 2 decimal places.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseAmount parses a user-supplied decimal amount string.
// Rejects non-numeric, negative and zero amounts.
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext(s), apperror.WithCause(err))
	}
	if !d.IsPositive() {
		return 0, apperror.New(apperror.CodeInvalidAmount,
			apperror.WithContext("amount must be positive"))
	}
	f, _ := d.Float64()
	return f, nil
}

// BaseUnits converts a display amount to an integer base-unit string using
// the token's decimals (e.g., 1.5 APT with 8 decimals -> "150000000").
// Fractional dust beyond the token's precision is truncated.
func BaseUnits(amount float64, decimals uint8) string {
	return decimal.NewFromFloat(amount).Shift(int32(decimals)).Truncate(0).String()
}

// CompareOutputs compares two formatted output amounts numerically.
// Unparseable values compare as zero so malformed quotes sort last.
func CompareOutputs(a, b string) int {
	return outputDecimal(a).Cmp(outputDecimal(b))
}

func outputDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
