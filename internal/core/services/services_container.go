package services

import (
	"net/http"
	"time"

	"github.com/coreledger/erp-backend/internal/adapters/forecast"
	"github.com/coreledger/erp-backend/internal/adapters/ratefeed"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/platform/cache"
	"github.com/coreledger/erp-backend/internal/platform/config"
)

// feedRequestTimeout bounds a single feed HTTP call.
const feedRequestTimeout = 15 * time.Second

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, currencyCache *cache.CurrencyCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency registry first, everything rate-related depends on it
	container.Currency = NewCurrencyService(repos.CurrencyRepo, currencyCache)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Converter = NewConversionService(container.Currency, container.ExchangeRate)

	container.Tenant = NewTenantService(repos.TenantRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	container.Forecast = forecast.NewClient(cfg.ForecastServiceURL, cfg.ForecastTimeout)

	if cfg.RateFeedEnabled {
		feedClient := ratefeed.NewClient(&http.Client{Timeout: feedRequestTimeout}, cfg.RateFeedURL)
		container.RateSync = NewRateSyncService(
			feedClient,
			container.Tenant,
			container.Currency,
			container.ExchangeRate,
			domain.RateSource(cfg.RateFeedSource),
		)
	}

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.ConverterSvc          = (*ConversionService)(nil)
)
