package services

import (
	"context"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/dto"
)

// CurrencyReaderSvc defines read operations for the tenant currency registry.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves an active currency by its code,
	// case-insensitively, within the tenant.
	GetCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error)

	// GetCurrencyByID retrieves a currency by its id within the tenant.
	GetCurrencyByID(ctx context.Context, tenantID, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all active currencies of the tenant.
	ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error)

	// GetBaseCurrency returns the tenant's active base currency, or nil when
	// none is configured. "None configured" is not an error.
	GetBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for the tenant currency registry.
type CurrencyWriterSvc interface {
	// CreateCurrency registers a new currency for the tenant.
	CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// UpdateCurrency applies a partial update to an existing currency.
	UpdateCurrency(ctx context.Context, tenantID, currencyID string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error)

	// RetireCurrency soft-deletes a currency. Rejected for the active base currency.
	RetireCurrency(ctx context.Context, tenantID, currencyID, retirerUserID string) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
