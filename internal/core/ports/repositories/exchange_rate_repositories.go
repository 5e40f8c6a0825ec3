package repositories

import (
	"context"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
)

// ListRatesFilter narrows an exchange rate listing. Zero values mean "no filter".
type ListRatesFilter struct {
	FromCurrencyID string
	ToCurrencyID   string
	AsOf           *time.Time // Only rates applicable at this instant
	Limit          int
	PageToken      string // Opaque token from a previous page
}

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a rate record by its id within the tenant.
	FindExchangeRateByID(ctx context.Context, tenantID, rateID string) (*domain.ExchangeRate, error)

	// FindApplicableRate retrieves the active rate for the exact ordered pair
	// whose validity window covers asOf. When several windows overlap, the one
	// with the latest effective date wins, ties broken by most recent creation.
	// Returns apperrors.ErrNotFound when no record applies.
	FindApplicableRate(ctx context.Context, tenantID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves active rate records for the tenant with
	// optional filters. Returns the page and a token for the next one, empty
	// when exhausted.
	ListExchangeRates(ctx context.Context, tenantID string, filter ListRatesFilter) ([]domain.ExchangeRate, string, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new rate record.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateExchangeRate updates rate, inverse rate and validity window in a
	// single statement so no reader observes a mismatched rate/inverse pair.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeactivateExchangeRate soft-deletes a rate record.
	DeactivateExchangeRate(ctx context.Context, tenantID, rateID, deactivatedBy string, deactivatedAt time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// ExchangeRateRepositoryWithTx extends ExchangeRateRepositoryFacade with transaction capabilities
type ExchangeRateRepositoryWithTx interface {
	ExchangeRateRepositoryFacade
	TransactionManager
}
