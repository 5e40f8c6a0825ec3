package utils

import (
	"testing"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func usd() domain.Currency {
	return domain.Currency{
		CurrencyCode:       "USD",
		Symbol:             "$",
		DecimalPlaces:      2,
		SymbolPosition:     domain.SymbolBefore,
		ThousandsSeparator: ",",
		DecimalSeparator:   ".",
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency domain.Currency
		want     string
	}{
		{
			name:     "usd with grouping and rounding",
			amount:   "1234567.891",
			currency: usd(),
			want:     "$1,234,567.89",
		},
		{
			name:   "eur style symbol after",
			amount: "1234567.891",
			currency: domain.Currency{
				CurrencyCode:       "EUR",
				Symbol:             "€",
				DecimalPlaces:      2,
				SymbolPosition:     domain.SymbolAfter,
				ThousandsSeparator: ".",
				DecimalSeparator:   ",",
			},
			want: "1.234.567,89 €",
		},
		{
			name:   "jpy zero decimal places",
			amount: "14950.4",
			currency: domain.Currency{
				CurrencyCode:       "JPY",
				Symbol:             "¥",
				DecimalPlaces:      0,
				SymbolPosition:     domain.SymbolBefore,
				ThousandsSeparator: ",",
			},
			want: "¥14,950",
		},
		{
			name:     "negative amount keeps sign before digits",
			amount:   "-1234.5",
			currency: usd(),
			want:     "-$1,234.50",
		},
		{
			name:     "small amount no grouping",
			amount:   "999.999",
			currency: usd(),
			want:     "$1,000.00",
		},
		{
			name:   "no symbol configured",
			amount: "42.5",
			currency: domain.Currency{
				CurrencyCode:     "XTS",
				DecimalPlaces:    2,
				DecimalSeparator: ".",
			},
			want: "42.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FormatAmount(amt, tt.currency))
		})
	}
}
