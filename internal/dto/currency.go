package dto

import (
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to register a new currency.
// Formatting fields fall back to registry defaults when omitted.
type CreateCurrencyRequest struct {
	CurrencyCode       string  `json:"currencyCode" binding:"required,currencycode"`
	Name               string  `json:"name" binding:"required"`
	Symbol             string  `json:"symbol" binding:"required"`
	DecimalPlaces      *int    `json:"decimalPlaces" binding:"omitempty,gte=0,lte=4"`
	SymbolPosition     *string `json:"symbolPosition" binding:"omitempty,oneof=BEFORE AFTER"`
	ThousandsSeparator *string `json:"thousandsSeparator"`
	DecimalSeparator   *string `json:"decimalSeparator"`
	IsBaseCurrency     bool    `json:"isBaseCurrency"`
	SortOrder          *int    `json:"sortOrder" binding:"omitempty,gte=0"`
}

// UpdateCurrencyRequest defines a partial update of a currency. Nil fields
// are left unchanged.
type UpdateCurrencyRequest struct {
	CurrencyCode       *string `json:"currencyCode" binding:"omitempty,currencycode"`
	Name               *string `json:"name"`
	Symbol             *string `json:"symbol"`
	DecimalPlaces      *int    `json:"decimalPlaces" binding:"omitempty,gte=0,lte=4"`
	SymbolPosition     *string `json:"symbolPosition" binding:"omitempty,oneof=BEFORE AFTER"`
	ThousandsSeparator *string `json:"thousandsSeparator"`
	DecimalSeparator   *string `json:"decimalSeparator"`
	IsBaseCurrency     *bool   `json:"isBaseCurrency"`
	SortOrder          *int    `json:"sortOrder" binding:"omitempty,gte=0"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID         string    `json:"currencyID"`
	CurrencyCode       string    `json:"currencyCode"`
	Name               string    `json:"name"`
	Symbol             string    `json:"symbol"`
	DecimalPlaces      int       `json:"decimalPlaces"`
	SymbolPosition     string    `json:"symbolPosition"`
	ThousandsSeparator string    `json:"thousandsSeparator"`
	DecimalSeparator   string    `json:"decimalSeparator"`
	IsBaseCurrency     bool      `json:"isBaseCurrency"`
	SortOrder          int       `json:"sortOrder"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy      string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:         curr.CurrencyID,
		CurrencyCode:       curr.CurrencyCode,
		Name:               curr.Name,
		Symbol:             curr.Symbol,
		DecimalPlaces:      curr.DecimalPlaces,
		SymbolPosition:     string(curr.SymbolPosition),
		ThousandsSeparator: curr.ThousandsSeparator,
		DecimalSeparator:   curr.DecimalSeparator,
		IsBaseCurrency:     curr.IsBaseCurrency,
		SortOrder:          curr.SortOrder,
		IsActive:           curr.IsActive,
		CreatedAt:          curr.CreatedAt,
		CreatedBy:          curr.CreatedBy,
		LastUpdatedAt:      curr.LastUpdatedAt,
		LastUpdatedBy:      curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain Currencies to response DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
