package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InverseRatePrecision bounds the stored inverse rate to 8 fractional digits.
const InverseRatePrecision = 8

// RateSource tags the provenance of an exchange rate record.
type RateSource string

const (
	SourceManual            RateSource = "MANUAL"
	SourceECB               RateSource = "ECB"
	SourceOpenExchangeRates RateSource = "OPEN_EXCHANGE_RATES"
	SourceFixer             RateSource = "FIXER"
	SourceCurrencyAPI       RateSource = "CURRENCY_API"
)

// KnownRateSources lists every accepted provenance tag.
var KnownRateSources = []RateSource{
	SourceManual,
	SourceECB,
	SourceOpenExchangeRates,
	SourceFixer,
	SourceCurrencyAPI,
}

// IsValid reports whether s is one of the known provenance tags.
func (s RateSource) IsValid() bool {
	for _, known := range KnownRateSources {
		if s == known {
			return true
		}
	}
	return false
}

// ExchangeRate stores the conversion rate between two tenant currencies
// for a validity window. InverseRate is derived from Rate and recomputed
// atomically whenever Rate changes.
type ExchangeRate struct {
	ExchangeRateID  string          `json:"exchangeRateID"` // Primary Key (UUID)
	TenantID        string          `json:"tenantID"`
	FromCurrencyID  string          `json:"fromCurrencyID"` // FK -> currencies.currency_id
	ToCurrencyID    string          `json:"toCurrencyID"`   // FK -> currencies.currency_id
	Rate            decimal.Decimal `json:"rate"`           // Always > 0
	InverseRate     decimal.Decimal `json:"inverseRate"`    // round(1/Rate, 8)
	EffectiveDate   time.Time       `json:"effectiveDate"`  // Inclusive lower bound
	ExpiresAt       *time.Time      `json:"expiresAt"`      // Inclusive upper bound, nil = open-ended
	Source          RateSource      `json:"source"`
	SourceReference string          `json:"sourceReference,omitempty"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// InverseOf computes the stored inverse for a rate, bounded to 8 fractional digits.
func InverseOf(rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(rate).Round(InverseRatePrecision)
}

// AppliesAt reports whether the rate's validity window covers the given instant.
// Both bounds are inclusive; a nil ExpiresAt means open-ended validity.
func (r ExchangeRate) AppliesAt(at time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveDate.After(at) {
		return false
	}
	if r.ExpiresAt != nil && r.ExpiresAt.Before(at) {
		return false
	}
	return true
}

// ResolutionKind identifies which branch of rate resolution produced a result.
type ResolutionKind string

const (
	ResolutionDirect   ResolutionKind = "DIRECT"
	ResolutionInverse  ResolutionKind = "INVERSE_DERIVED"
	ResolutionIdentity ResolutionKind = "IDENTITY"
)

// RateResolution is the computed view returned by rate resolution.
// Identity and inverse-derived resolutions are synthesized, not persisted.
type RateResolution struct {
	Rate          decimal.Decimal `json:"rate"`
	InverseRate   decimal.Decimal `json:"inverseRate"`
	Source        RateSource      `json:"source"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	Kind          ResolutionKind  `json:"-"`
}

// IdentityResolution is the synthetic 1:1 resolution for a same-currency pair.
func IdentityResolution(now time.Time) RateResolution {
	one := decimal.NewFromInt(1)
	return RateResolution{
		Rate:          one,
		InverseRate:   one,
		Source:        SourceManual,
		EffectiveDate: now,
		Kind:          ResolutionIdentity,
	}
}
