package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/coreledger/erp-backend/internal/utils"
)

// MaxBulkConversionItems caps a single bulk conversion batch.
const MaxBulkConversionItems = 100

// ConversionService converts monetary amounts between tenant currencies,
// rounding results to the target currency's configured decimal places.
type ConversionService struct {
	BaseService
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.ExchangeRateReaderSvc
}

// NewConversionService creates a new ConversionService.
func NewConversionService(currencyService portssvc.CurrencySvcFacade, rateService portssvc.ExchangeRateReaderSvc) *ConversionService {
	return &ConversionService{
		currencyService: currencyService,
		rateService:     rateService,
	}
}

var _ portssvc.ConverterSvc = (*ConversionService)(nil)

// Convert converts a single amount between two currencies of the tenant.
// The as-of date defaults to the current instant when omitted.
func (s *ConversionService) Convert(ctx context.Context, tenantID string, req dto.ConvertRequest) (domain.ConversionResult, error) {
	if req.Amount.IsNegative() {
		return domain.ConversionResult{}, fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidation)
	}

	from, err := s.currencyService.GetCurrencyByCode(ctx, tenantID, req.FromCurrency)
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("unknown currency %s: %w", req.FromCurrency, err)
	}
	to, err := s.currencyService.GetCurrencyByCode(ctx, tenantID, req.ToCurrency)
	if err != nil {
		return domain.ConversionResult{}, fmt.Errorf("unknown currency %s: %w", req.ToCurrency, err)
	}

	asOf := time.Now()
	if req.Date != nil {
		asOf = *req.Date
	}

	resolution, err := s.rateService.ResolveRate(ctx, tenantID, *from, *to, asOf)
	if err != nil {
		return domain.ConversionResult{}, err
	}

	// The target currency's decimal places are the single source of truth
	// for monetary rounding.
	converted := req.Amount.Mul(resolution.Rate).Round(int32(to.DecimalPlaces))

	return domain.ConversionResult{
		OriginalAmount:   req.Amount,
		ConvertedAmount:  converted,
		FromCurrencyCode: from.CurrencyCode,
		ToCurrencyCode:   to.CurrencyCode,
		Rate:             resolution.Rate,
		InverseRate:      resolution.InverseRate,
		EffectiveDate:    resolution.EffectiveDate,
		Source:           resolution.Source,
		FormattedAmount:  utils.FormatAmount(converted, *to),
	}, nil
}

// BulkConvert converts a batch of requests, isolating per-item failures:
// items that fail validation or rate resolution are skipped and the rest are
// returned in input order. A batch over the item cap is rejected before any
// item is processed.
func (s *ConversionService) BulkConvert(ctx context.Context, tenantID string, reqs []dto.ConvertRequest) ([]domain.ConversionResult, error) {
	if len(reqs) > MaxBulkConversionItems {
		return nil, fmt.Errorf("%w: bulk conversion accepts at most %d items, got %d",
			apperrors.ErrTooManyItems, MaxBulkConversionItems, len(reqs))
	}

	results := make([]domain.ConversionResult, 0, len(reqs))
	for i, req := range reqs {
		result, err := s.Convert(ctx, tenantID, req)
		if err != nil {
			s.LogDebug(ctx, "bulk conversion item skipped",
				slog.Int("index", i),
				slog.String("from", req.FromCurrency),
				slog.String("to", req.ToCurrency),
				slog.String("reason", err.Error()))
			continue
		}
		results = append(results, result)
	}
	return results, nil
}
