// Package valueobject contains domain value objects for the Patungan system.
package valueobject

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparseableAmount is returned when a raw amount string contains no digits.
var ErrUnparseableAmount = errors.New("amount contains no digits")

// FormatRupiah renders an amount in the localized Rupiah display format,
// e.g. "Rp 1.250.000". Amounts are rounded to the whole unit for display;
// this is presentation only and never feeds back into the computation.
func FormatRupiah(amount decimal.Decimal) string {
	rounded := amount.Round(0)

	negative := rounded.IsNegative()
	digits := rounded.Abs().String()

	var sb strings.Builder
	sb.WriteString("Rp ")
	if negative {
		sb.WriteString("-")
	}

	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
		if len(digits) > lead {
			sb.WriteString(".")
		}
	}
	for i := lead; i < len(digits); i += 3 {
		sb.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			sb.WriteString(".")
		}
	}

	return sb.String()
}

// ParseRupiah parses the inverse of FormatRupiah: user-entered Rupiah text
// such as "Rp 12.500", "12500" or "12.500". All non-digit characters are
// ignored, matching how the entry fields treat partially typed values.
func ParseRupiah(raw string) (decimal.Decimal, error) {
	negative := strings.HasPrefix(strings.TrimSpace(raw), "-")

	var sb strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return decimal.Zero, ErrUnparseableAmount
	}

	amount, err := decimal.NewFromString(sb.String())
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}
