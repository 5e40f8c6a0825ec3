package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/coreledger/erp-backend/internal/platform/cache"
	"github.com/google/uuid"
)

// Registry defaults applied when a create request omits formatting fields.
const (
	defaultDecimalPlaces      = 2
	defaultThousandsSeparator = ","
	defaultDecimalSeparator   = "."
)

// CurrencyService manages the tenant currency registry.
type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	cache        *cache.CurrencyCache
}

// NewCurrencyService creates a new CurrencyService. The cache is optional.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, currencyCache *cache.CurrencyCache) *CurrencyService {
	return &CurrencyService{
		currencyRepo: currencyRepo,
		cache:        currencyCache,
	}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// CreateCurrency registers a new currency for the tenant. A currency flagged
// as base currency displaces any previous base currency atomically.
func (s *CurrencyService) CreateCurrency(ctx context.Context, tenantID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	now := time.Now()
	code := strings.ToUpper(req.CurrencyCode)

	currency := domain.Currency{
		CurrencyID:         uuid.NewString(),
		TenantID:           tenantID,
		CurrencyCode:       code,
		Name:               req.Name,
		Symbol:             req.Symbol,
		DecimalPlaces:      defaultDecimalPlaces,
		SymbolPosition:     domain.SymbolBefore,
		ThousandsSeparator: defaultThousandsSeparator,
		DecimalSeparator:   defaultDecimalSeparator,
		IsBaseCurrency:     req.IsBaseCurrency,
		SortOrder:          -1, // append at the end
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.DecimalPlaces != nil {
		currency.DecimalPlaces = *req.DecimalPlaces
	}
	if req.SymbolPosition != nil {
		currency.SymbolPosition = domain.SymbolPosition(*req.SymbolPosition)
	}
	if req.ThousandsSeparator != nil {
		currency.ThousandsSeparator = *req.ThousandsSeparator
	}
	if req.DecimalSeparator != nil {
		currency.DecimalSeparator = *req.DecimalSeparator
	}
	if req.SortOrder != nil {
		currency.SortOrder = *req.SortOrder
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "failed to create currency", slog.String("currency_code", code))
		return nil, err
	}

	s.invalidate(tenantID, code)
	s.LogInfo(ctx, "currency created",
		slog.String("currency_id", currency.CurrencyID),
		slog.String("currency_code", code),
		slog.Bool("is_base", currency.IsBaseCurrency))
	return &currency, nil
}

// UpdateCurrency applies a partial update to an existing currency.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, tenantID, currencyID string, req dto.UpdateCurrencyRequest, updaterUserID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, tenantID, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", currencyID, err)
	}

	oldCode := currency.CurrencyCode
	if req.CurrencyCode != nil {
		currency.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
	}
	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.DecimalPlaces != nil {
		currency.DecimalPlaces = *req.DecimalPlaces
	}
	if req.SymbolPosition != nil {
		currency.SymbolPosition = domain.SymbolPosition(*req.SymbolPosition)
	}
	if req.ThousandsSeparator != nil {
		currency.ThousandsSeparator = *req.ThousandsSeparator
	}
	if req.DecimalSeparator != nil {
		currency.DecimalSeparator = *req.DecimalSeparator
	}
	if req.IsBaseCurrency != nil {
		if !*req.IsBaseCurrency && currency.IsBaseCurrency {
			// Demotion is allowed and simply leaves the tenant without a base
			// currency until another one is promoted.
			s.LogInfo(ctx, "base currency demoted", slog.String("currency_code", currency.CurrencyCode))
		}
		currency.IsBaseCurrency = *req.IsBaseCurrency
	}
	if req.SortOrder != nil {
		currency.SortOrder = *req.SortOrder
	}
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = updaterUserID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "failed to update currency", slog.String("currency_id", currencyID))
		return nil, err
	}

	s.invalidate(tenantID, oldCode)
	s.invalidate(tenantID, currency.CurrencyCode)
	return currency, nil
}

// RetireCurrency soft-deletes a currency. The active base currency cannot be
// retired; it must be demoted or replaced first.
func (s *CurrencyService) RetireCurrency(ctx context.Context, tenantID, currencyID, retirerUserID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, tenantID, currencyID)
	if err != nil {
		return fmt.Errorf("failed to load currency %s: %w", currencyID, err)
	}
	if currency.IsBaseCurrency {
		return fmt.Errorf("%w: cannot retire the base currency %s", apperrors.ErrBaseCurrency, currency.CurrencyCode)
	}

	if err := s.currencyRepo.RetireCurrency(ctx, tenantID, currencyID, retirerUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to retire currency", slog.String("currency_id", currencyID))
		return err
	}

	s.invalidate(tenantID, currency.CurrencyCode)
	s.LogInfo(ctx, "currency retired", slog.String("currency_code", currency.CurrencyCode))
	return nil
}

// GetCurrencyByCode retrieves an active currency by its code within the
// tenant. Lookup is case-insensitive and served from cache when possible.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(currencyCode)
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	if s.cache != nil {
		if curr, ok := s.cache.Get(tenantID, code); ok {
			return &curr, nil
		}
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(tenantID, code, *currency)
	}
	return currency, nil
}

// GetCurrencyByID retrieves a currency by its id within the tenant.
func (s *CurrencyService) GetCurrencyByID(ctx context.Context, tenantID, currencyID string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByID(ctx, tenantID, currencyID)
}

// ListCurrencies retrieves all active currencies of the tenant.
func (s *CurrencyService) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// GetBaseCurrency returns the tenant's active base currency, or nil when none
// is configured.
func (s *CurrencyService) GetBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	return currency, nil
}

func (s *CurrencyService) invalidate(tenantID, code string) {
	if s.cache != nil {
		s.cache.Invalidate(tenantID, code)
	}
}
