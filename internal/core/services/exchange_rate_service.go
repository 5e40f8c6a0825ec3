package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rate records and
// rate resolution.
type ExchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencySvcFacade
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencySvcFacade) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate persists a new rate record. The inverse rate is always
// derived server-side from the submitted rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, tenantID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, fmt.Errorf("%w: from and to currency cannot be the same", apperrors.ErrInvalidPair)
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(req.EffectiveDate) {
		return nil, fmt.Errorf("%w: expiry cannot precede effective date", apperrors.ErrValidation)
	}

	// Both currencies must exist in the tenant's registry.
	if _, err := s.currencyService.GetCurrencyByID(ctx, tenantID, req.FromCurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency %s not found", apperrors.ErrNotFound, req.FromCurrencyID)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency %s: %w", req.FromCurrencyID, err)
	}
	if _, err := s.currencyService.GetCurrencyByID(ctx, tenantID, req.ToCurrencyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency %s not found", apperrors.ErrNotFound, req.ToCurrencyID)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency %s: %w", req.ToCurrencyID, err)
	}

	source := domain.SourceManual
	if req.Source != nil {
		source = domain.RateSource(*req.Source)
	}
	sourceRef := ""
	if req.SourceReference != nil {
		sourceRef = *req.SourceReference
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:  uuid.NewString(),
		TenantID:        tenantID,
		FromCurrencyID:  req.FromCurrencyID,
		ToCurrencyID:    req.ToCurrencyID,
		Rate:            req.Rate,
		InverseRate:     domain.InverseOf(req.Rate),
		EffectiveDate:   req.EffectiveDate,
		ExpiresAt:       req.ExpiresAt,
		Source:          source,
		SourceReference: sourceRef,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to create exchange rate",
			slog.String("from_currency_id", req.FromCurrencyID),
			slog.String("to_currency_id", req.ToCurrencyID))
		return nil, err
	}

	s.LogInfo(ctx, "exchange rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("rate", rate.Rate.String()),
		slog.String("source", string(rate.Source)))
	return &rate, nil
}

// UpdateExchangeRate applies a partial update. A rate change recomputes the
// stored inverse in the same write.
func (s *ExchangeRateService) UpdateExchangeRate(ctx context.Context, tenantID, rateID string, req dto.UpdateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, tenantID, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rate %s: %w", rateID, err)
	}

	if req.Rate != nil {
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		rate.Rate = *req.Rate
		rate.InverseRate = domain.InverseOf(*req.Rate)
	}
	if req.EffectiveDate != nil {
		rate.EffectiveDate = *req.EffectiveDate
	}
	if req.ExpiresAt != nil {
		rate.ExpiresAt = req.ExpiresAt
	}
	if rate.ExpiresAt != nil && rate.ExpiresAt.Before(rate.EffectiveDate) {
		return nil, fmt.Errorf("%w: expiry cannot precede effective date", apperrors.ErrValidation)
	}
	if req.Source != nil {
		rate.Source = domain.RateSource(*req.Source)
	}
	if req.SourceReference != nil {
		rate.SourceReference = *req.SourceReference
	}
	rate.LastUpdatedAt = time.Now()
	rate.LastUpdatedBy = updaterUserID

	if err := s.rateRepo.UpdateExchangeRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "failed to update exchange rate", slog.String("exchange_rate_id", rateID))
		return nil, err
	}
	return rate, nil
}

// DeactivateExchangeRate soft-deletes a rate record. It no longer takes part
// in resolution from that moment on.
func (s *ExchangeRateService) DeactivateExchangeRate(ctx context.Context, tenantID, rateID, userID string) error {
	if err := s.rateRepo.DeactivateExchangeRate(ctx, tenantID, rateID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "failed to deactivate exchange rate", slog.String("exchange_rate_id", rateID))
		return err
	}
	s.LogInfo(ctx, "exchange rate deactivated", slog.String("exchange_rate_id", rateID))
	return nil
}

// GetExchangeRateByID retrieves a rate record by its id within the tenant.
func (s *ExchangeRateService) GetExchangeRateByID(ctx context.Context, tenantID, rateID string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindExchangeRateByID(ctx, tenantID, rateID)
}

// ListExchangeRates retrieves one page of the tenant's rate records.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, tenantID string, req dto.ListExchangeRatesRequest) ([]domain.ExchangeRate, string, error) {
	rates, nextToken, err := s.rateRepo.ListExchangeRates(ctx, tenantID, portsrepo.ListRatesFilter{
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		AsOf:           req.Date,
		Limit:          req.Limit,
		PageToken:      req.PageToken,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list exchange rates: %w", err)
	}
	if rates == nil {
		rates = []domain.ExchangeRate{}
	}
	return rates, nextToken, nil
}

// ResolveRate finds the applicable rate for the ordered currency pair at asOf.
// Resolution tries, in order: the identity short-circuit for a same-currency
// pair, a stored record for the exact pair, and the inverse of a stored record
// for the reversed pair. Exhausting all three yields ErrNotFound.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, tenantID string, from, to domain.Currency, asOf time.Time) (domain.RateResolution, error) {
	if from.CurrencyID == to.CurrencyID {
		return domain.IdentityResolution(asOf), nil
	}

	direct, err := s.rateRepo.FindApplicableRate(ctx, tenantID, from.CurrencyID, to.CurrencyID, asOf)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.RateResolution{}, fmt.Errorf("failed to resolve direct rate: %w", err)
	}
	// A record only resolves when its validity window covers asOf, no matter
	// how it was fetched.
	if err == nil && direct.AppliesAt(asOf) {
		return domain.RateResolution{
			Rate:          direct.Rate,
			InverseRate:   direct.InverseRate,
			Source:        direct.Source,
			EffectiveDate: direct.EffectiveDate,
			Kind:          domain.ResolutionDirect,
		}, nil
	}

	reversed, err := s.rateRepo.FindApplicableRate(ctx, tenantID, to.CurrencyID, from.CurrencyID, asOf)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.RateResolution{}, fmt.Errorf("failed to resolve inverse rate: %w", err)
	}
	if err != nil || !reversed.AppliesAt(asOf) {
		return domain.RateResolution{}, fmt.Errorf("%w: no exchange rate from %s to %s at %s",
			apperrors.ErrNotFound, from.CurrencyCode, to.CurrencyCode, asOf.Format(time.RFC3339))
	}

	return domain.RateResolution{
		Rate:          reversed.InverseRate,
		InverseRate:   reversed.Rate,
		Source:        reversed.Source,
		EffectiveDate: reversed.EffectiveDate,
		Kind:          domain.ResolutionInverse,
	}, nil
}

// ResolveRateByCodes looks both currencies up in the registry by code and
// delegates to ResolveRate.
func (s *ExchangeRateService) ResolveRateByCodes(ctx context.Context, tenantID, fromCode, toCode string, asOf time.Time) (domain.RateResolution, error) {
	from, err := s.currencyService.GetCurrencyByCode(ctx, tenantID, fromCode)
	if err != nil {
		return domain.RateResolution{}, fmt.Errorf("unknown currency %s: %w", fromCode, err)
	}
	to, err := s.currencyService.GetCurrencyByCode(ctx, tenantID, toCode)
	if err != nil {
		return domain.RateResolution{}, fmt.Errorf("unknown currency %s: %w", toCode, err)
	}
	return s.ResolveRate(ctx, tenantID, *from, *to, asOf)
}
