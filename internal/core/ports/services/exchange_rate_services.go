package services

import (
	"context"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/dto"
)

// ExchangeRateReaderSvc defines read and resolution operations for exchange rates.
type ExchangeRateReaderSvc interface {
	// GetExchangeRateByID retrieves a rate record by its id within the tenant.
	GetExchangeRateByID(ctx context.Context, tenantID, rateID string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves one page of the tenant's rate records.
	ListExchangeRates(ctx context.Context, tenantID string, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, string, error)

	// ResolveRate finds the applicable rate for the ordered pair at asOf:
	// identity short-circuit, then direct record, then inverse-derived fallback.
	ResolveRate(ctx context.Context, tenantID string, from, to domain.Currency, asOf time.Time) (domain.RateResolution, error)

	// ResolveRateByCodes looks both currencies up in the registry by code and
	// delegates to ResolveRate.
	ResolveRateByCodes(ctx context.Context, tenantID, fromCode, toCode string, asOf time.Time) (domain.RateResolution, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rates.
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a new rate record with a derived inverse rate.
	CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// UpdateExchangeRate applies a partial update; a rate change recomputes the
	// inverse rate atomically.
	UpdateExchangeRate(ctx context.Context, tenantID, rateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error)

	// DeactivateExchangeRate soft-deletes a rate record.
	DeactivateExchangeRate(ctx context.Context, tenantID, rateID, userID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// ConverterSvc performs monetary conversion on top of rate resolution,
// rounding to the target currency's configured decimal places.
type ConverterSvc interface {
	// Convert converts a single amount between two currencies of the tenant.
	Convert(ctx context.Context, tenantID string, req dto.ConvertRequest) (domain.ConversionResult, error)

	// BulkConvert converts up to the item cap of requests, isolating failures:
	// items that fail validation or resolution are omitted from the result.
	BulkConvert(ctx context.Context, tenantID string, reqs []dto.ConvertRequest) ([]domain.ConversionResult, error)
}
