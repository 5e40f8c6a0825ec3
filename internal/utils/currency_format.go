package utils

import (
	"strings"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount using the currency's display settings:
// rounded to the currency's decimal places, grouped with its thousands
// separator and prefixed or suffixed with its symbol.
// Example: 1234567.891 with USD ($, BEFORE, ",", ".", 2 places) returns "$1,234,567.89"
// Example: 1234567.891 with EUR (€, AFTER, ".", ",", 2 places) returns "1.234.567,89 €"
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	rounded := amount.Round(int32(currency.DecimalPlaces))

	negative := rounded.IsNegative()
	fixed := rounded.Abs().StringFixed(int32(currency.DecimalPlaces))

	intPart := fixed
	fracPart := ""
	if idx := strings.IndexByte(fixed, '.'); idx >= 0 {
		intPart = fixed[:idx]
		fracPart = fixed[idx+1:]
	}

	number := groupThousands(intPart, currency.ThousandsSeparator)
	if fracPart != "" {
		sep := currency.DecimalSeparator
		if sep == "" {
			sep = "."
		}
		number += sep + fracPart
	}
	formatted := number
	switch {
	case currency.Symbol == "":
	case currency.SymbolPosition == domain.SymbolAfter:
		formatted = number + " " + currency.Symbol
	default:
		formatted = currency.Symbol + number
	}
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

func groupThousands(digits, separator string) string {
	if separator == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(separator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
