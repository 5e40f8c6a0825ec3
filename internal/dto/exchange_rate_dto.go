package dto

import (
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
// The inverse rate is derived server-side and cannot be supplied.
type CreateExchangeRateRequest struct {
	FromCurrencyID  string          `json:"fromCurrencyID" binding:"required,uuid"`
	ToCurrencyID    string          `json:"toCurrencyID" binding:"required,uuid"`
	Rate            decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate   time.Time       `json:"effectiveDate" binding:"required"`
	ExpiresAt       *time.Time      `json:"expiresAt"`
	Source          *string         `json:"source" binding:"omitempty,oneof=MANUAL ECB OPEN_EXCHANGE_RATES FIXER CURRENCY_API"`
	SourceReference *string         `json:"sourceReference"`
}

// UpdateExchangeRateRequest defines a partial update of an exchange rate.
// Updating Rate recomputes the stored inverse rate in the same statement.
type UpdateExchangeRateRequest struct {
	Rate            *decimal.Decimal `json:"rate"`
	EffectiveDate   *time.Time       `json:"effectiveDate"`
	ExpiresAt       *time.Time       `json:"expiresAt"`
	Source          *string          `json:"source" binding:"omitempty,oneof=MANUAL ECB OPEN_EXCHANGE_RATES FIXER CURRENCY_API"`
	SourceReference *string          `json:"sourceReference"`
}

// ListExchangeRatesRequest carries the query parameters of a rate listing.
type ListExchangeRatesRequest struct {
	FromCurrencyID string     `form:"fromCurrencyID" binding:"omitempty,uuid"`
	ToCurrencyID   string     `form:"toCurrencyID" binding:"omitempty,uuid"`
	Date           *time.Time `form:"date" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit          int        `form:"limit" binding:"omitempty,gte=1,lte=200"`
	PageToken      string     `form:"pageToken"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID  string          `json:"exchangeRateID"`
	FromCurrencyID  string          `json:"fromCurrencyID"`
	ToCurrencyID    string          `json:"toCurrencyID"`
	Rate            decimal.Decimal `json:"rate"`
	InverseRate     decimal.Decimal `json:"inverseRate"`
	EffectiveDate   time.Time       `json:"effectiveDate"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	Source          string          `json:"source"`
	SourceReference string          `json:"sourceReference,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy   string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:  rate.ExchangeRateID,
		FromCurrencyID:  rate.FromCurrencyID,
		ToCurrencyID:    rate.ToCurrencyID,
		Rate:            rate.Rate,
		InverseRate:     rate.InverseRate,
		EffectiveDate:   rate.EffectiveDate,
		ExpiresAt:       rate.ExpiresAt,
		Source:          string(rate.Source),
		SourceReference: rate.SourceReference,
		IsActive:        rate.IsActive,
		CreatedAt:       rate.CreatedAt,
		CreatedBy:       rate.CreatedBy,
		LastUpdatedAt:   rate.LastUpdatedAt,
		LastUpdatedBy:   rate.LastUpdatedBy,
	}
}

// ListExchangeRatesResponse is one page of exchange rates.
type ListExchangeRatesResponse struct {
	Rates         []ExchangeRateResponse `json:"rates"`
	NextPageToken string                 `json:"nextPageToken,omitempty"`
}

// ToListExchangeRatesResponse converts a page of domain rates to the response DTO.
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, nextToken string) ListExchangeRatesResponse {
	res := ListExchangeRatesResponse{
		Rates:         make([]ExchangeRateResponse, len(rates)),
		NextPageToken: nextToken,
	}
	for i := range rates {
		res.Rates[i] = ToExchangeRateResponse(&rates[i])
	}
	return res
}

// RateResolutionResponse is the uniform shape returned for a resolved rate,
// whether it came from a stored record, an inverse record or the identity case.
type RateResolutionResponse struct {
	FromCurrency  string          `json:"fromCurrency"`
	ToCurrency    string          `json:"toCurrency"`
	Rate          decimal.Decimal `json:"rate"`
	InverseRate   decimal.Decimal `json:"inverseRate"`
	EffectiveDate time.Time       `json:"effectiveDate"`
	Source        string          `json:"source"`
}

// ToRateResolutionResponse converts a domain.RateResolution to its response DTO.
func ToRateResolutionResponse(fromCode, toCode string, res domain.RateResolution) RateResolutionResponse {
	return RateResolutionResponse{
		FromCurrency:  fromCode,
		ToCurrency:    toCode,
		Rate:          res.Rate,
		InverseRate:   res.InverseRate,
		EffectiveDate: res.EffectiveDate,
		Source:        string(res.Source),
	}
}
