package repositories

import (
	"context"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
)

// CurrencyReader defines read operations for tenant currency data.
// Lookups only consider active (non-retired) currencies.
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by its id within the tenant.
	FindCurrencyByID(ctx context.Context, tenantID, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency by its 3-letter code within the tenant.
	// The code must already be normalized to uppercase.
	FindCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all active currencies of the tenant, ordered by sort order.
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)

	// FindBaseCurrency retrieves the tenant's active base currency.
	// Returns apperrors.ErrNotFound when none is configured.
	FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)
}

// CurrencyWriter defines write operations for tenant currency data.
// When the saved or updated currency has IsBaseCurrency set, the repository
// clears the flag on every other currency of the tenant in the same
// transaction, so at most one base currency exists per tenant at any time.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency. Returns apperrors.ErrDuplicate when
	// the code already exists for the tenant.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency updates an existing currency in place.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error

	// RetireCurrency soft-deletes a currency (inactive + deletion timestamp).
	RetireCurrency(ctx context.Context, tenantID, currencyID, retiredBy string, retiredAt time.Time) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
