package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionResult describes a completed monetary conversion.
// ConvertedAmount is rounded to the target currency's decimal places.
type ConversionResult struct {
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	FromCurrencyCode string          `json:"fromCurrency"`
	ToCurrencyCode   string          `json:"toCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	InverseRate      decimal.Decimal `json:"inverseRate"`
	EffectiveDate    time.Time       `json:"effectiveDate"`
	Source           RateSource      `json:"source"`
	FormattedAmount  string          `json:"formattedAmount"`
}
