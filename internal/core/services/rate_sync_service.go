package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// systemUserID marks records written by background jobs rather than operators.
const systemUserID = "system"

// RateFeedClient fetches conversion rates for a base currency from an
// external feed, keyed by quote currency code.
type RateFeedClient interface {
	GetExchangeRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// RateSyncService pulls feed rates into every tenant's rate store. Each
// tenant with a base currency gets one fresh base->quote record per
// registered currency the feed covers.
type RateSyncService struct {
	BaseService
	feedClient      RateFeedClient
	tenantService   portssvc.TenantReaderSvc
	currencyService portssvc.CurrencySvcFacade
	rateService     portssvc.ExchangeRateWriterSvc
	source          domain.RateSource
}

// NewRateSyncService creates a new RateSyncService. The source tags every
// synced record with the configured feed provenance.
func NewRateSyncService(
	feedClient RateFeedClient,
	tenantService portssvc.TenantReaderSvc,
	currencyService portssvc.CurrencySvcFacade,
	rateService portssvc.ExchangeRateWriterSvc,
	source domain.RateSource,
) *RateSyncService {
	if !source.IsValid() {
		source = domain.SourceOpenExchangeRates
	}
	return &RateSyncService{
		feedClient:      feedClient,
		tenantService:   tenantService,
		currencyService: currencyService,
		rateService:     rateService,
		source:          source,
	}
}

var _ portssvc.RateSyncSvc = (*RateSyncService)(nil)

// SyncAllTenants refreshes feed rates for every tenant with a base currency.
// Per-tenant failures are logged and skipped so one broken tenant cannot
// starve the rest.
func (s *RateSyncService) SyncAllTenants(ctx context.Context) error {
	tenants, err := s.tenantService.ListTenants(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tenants for rate sync: %w", err)
	}

	var failed int
	for _, tenant := range tenants {
		if err := s.syncTenant(ctx, tenant.TenantID); err != nil {
			failed++
			s.LogWarn(ctx, "rate sync failed for tenant",
				slog.String("tenant_id", tenant.TenantID),
				slog.String("error", err.Error()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("rate sync failed for %d of %d tenants", failed, len(tenants))
	}
	return nil
}

func (s *RateSyncService) syncTenant(ctx context.Context, tenantID string) error {
	base, err := s.currencyService.GetBaseCurrency(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get base currency: %w", err)
	}
	if base == nil {
		// Nothing to anchor feed rates to.
		return nil
	}

	feedRates, err := s.feedClient.GetExchangeRates(ctx, base.CurrencyCode)
	if err != nil {
		return fmt.Errorf("failed to fetch feed rates for %s: %w", base.CurrencyCode, err)
	}

	currencies, err := s.currencyService.ListCurrencies(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to list currencies: %w", err)
	}

	now := time.Now()
	sourceStr := string(s.source)
	sourceRef := fmt.Sprintf("feed sync %s base=%s", now.Format(time.RFC3339), base.CurrencyCode)

	var synced int
	for _, curr := range currencies {
		if curr.CurrencyID == base.CurrencyID {
			continue
		}
		rate, ok := feedRates[curr.CurrencyCode]
		if !ok || rate.LessThanOrEqual(decimal.Zero) {
			continue
		}

		_, err := s.rateService.CreateExchangeRate(ctx, tenantID, dto.CreateExchangeRateRequest{
			FromCurrencyID:  base.CurrencyID,
			ToCurrencyID:    curr.CurrencyID,
			Rate:            rate,
			EffectiveDate:   now,
			Source:          &sourceStr,
			SourceReference: &sourceRef,
		}, systemUserID)
		if err != nil {
			s.LogWarn(ctx, "failed to store synced rate",
				slog.String("tenant_id", tenantID),
				slog.String("to_currency", curr.CurrencyCode),
				slog.String("error", err.Error()))
			continue
		}
		synced++
	}

	s.LogInfo(ctx, "tenant rate sync completed",
		slog.String("tenant_id", tenantID),
		slog.String("base_currency", base.CurrencyCode),
		slog.Int("synced", synced))
	return nil
}
