package services

import (
	"context"
	"encoding/json"

	"github.com/coreledger/erp-backend/internal/dto"
)

// ForecastSvcFacade proxies predictive-analytics requests to the external
// AI service, injecting the tenant id. Responses are passed through verbatim.
type ForecastSvcFacade interface {
	DemandForecast(ctx context.Context, tenantID string, req dto.DemandForecastRequest) (json.RawMessage, error)
	StockOptimization(ctx context.Context, tenantID string, req dto.StockOptimizationRequest) (json.RawMessage, error)
	SeasonalPatterns(ctx context.Context, tenantID string, req dto.SeasonalPatternRequest) (json.RawMessage, error)
}

// RateSyncSvc pulls exchange rates from the configured external feed into
// the tenant rate stores. Invoked by the background scheduler.
type RateSyncSvc interface {
	// SyncAllTenants refreshes feed rates for every tenant with a base currency.
	SyncAllTenants(ctx context.Context) error
}
