package dto

import (
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest is a single conversion request. Date defaults to "now"
// when omitted. Amount must be non-negative (checked by the service since
// decimals carry no binding tag for it).
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,currencycode"`
	ToCurrency   string          `json:"toCurrency" binding:"required,currencycode"`
	Date         *time.Time      `json:"date"`
}

// BulkConvertRequest is an ordered batch of conversion requests.
// The service rejects batches over the item cap before processing any item.
// Items carry no binding validation: the service skips a malformed item
// like any other per-item failure instead of failing the batch.
type BulkConvertRequest struct {
	Conversions []ConvertRequest `json:"conversions" binding:"required,min=1"`
}

// ConversionResponse carries one completed conversion.
type ConversionResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	InverseRate     decimal.Decimal `json:"inverseRate"`
	EffectiveDate   time.Time       `json:"effectiveDate"`
	Source          string          `json:"source"`
	FormattedAmount string          `json:"formattedAmount"`
}

// ToConversionResponse converts a domain.ConversionResult to its response DTO.
func ToConversionResponse(res domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:  res.OriginalAmount,
		ConvertedAmount: res.ConvertedAmount,
		FromCurrency:    res.FromCurrencyCode,
		ToCurrency:      res.ToCurrencyCode,
		Rate:            res.Rate,
		InverseRate:     res.InverseRate,
		EffectiveDate:   res.EffectiveDate,
		Source:          string(res.Source),
		FormattedAmount: res.FormattedAmount,
	}
}

// BulkConversionResponse carries the successfully converted items of a batch.
// It may be shorter than the input when items were skipped.
type BulkConversionResponse struct {
	Results []ConversionResponse `json:"results"`
}

// ToBulkConversionResponse converts domain conversion results to the response DTO.
func ToBulkConversionResponse(results []domain.ConversionResult) BulkConversionResponse {
	res := BulkConversionResponse{Results: make([]ConversionResponse, len(results))}
	for i, r := range results {
		res.Results[i] = ToConversionResponse(r)
	}
	return res
}
