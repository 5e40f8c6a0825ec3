package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/coreledger/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// forecastHandler proxies predictive-analytics requests to the AI service.
type forecastHandler struct {
	forecastService portssvc.ForecastSvcFacade
}

// registerForecastRoutes registers the forecast proxy routes.
func registerForecastRoutes(rg *gin.RouterGroup, forecastService portssvc.ForecastSvcFacade) {
	h := &forecastHandler{forecastService: forecastService}

	forecast := rg.Group("/forecast")
	{
		forecast.POST("/demand", h.demandForecast)
		forecast.POST("/stock-optimization", h.stockOptimization)
		forecast.POST("/seasonal-patterns", h.seasonalPatterns)
	}
}

// demandForecast godoc
// @Summary Forecast product demand
// @Description Proxies a demand forecast request to the AI service, scoped to the caller's tenant
// @Tags forecast
// @Accept  json
// @Produce  json
// @Param   request body dto.DemandForecastRequest true "Forecast parameters"
// @Success 200 {object} object "AI service response, passed through verbatim"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "AI service unavailable"
// @Security BearerAuth
// @Router /forecast/demand [post]
func (h *forecastHandler) demandForecast(c *gin.Context) {
	var req dto.DemandForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.proxy(c, func(tenantID string) (json.RawMessage, error) {
		return h.forecastService.DemandForecast(c.Request.Context(), tenantID, req)
	})
}

// stockOptimization godoc
// @Summary Optimize stock levels
// @Description Proxies a stock optimization request to the AI service, scoped to the caller's tenant
// @Tags forecast
// @Accept  json
// @Produce  json
// @Param   request body dto.StockOptimizationRequest true "Optimization parameters"
// @Success 200 {object} object "AI service response, passed through verbatim"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "AI service unavailable"
// @Security BearerAuth
// @Router /forecast/stock-optimization [post]
func (h *forecastHandler) stockOptimization(c *gin.Context) {
	var req dto.StockOptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.proxy(c, func(tenantID string) (json.RawMessage, error) {
		return h.forecastService.StockOptimization(c.Request.Context(), tenantID, req)
	})
}

// seasonalPatterns godoc
// @Summary Analyze seasonal demand patterns
// @Description Proxies a seasonal analysis request to the AI service, scoped to the caller's tenant
// @Tags forecast
// @Accept  json
// @Produce  json
// @Param   request body dto.SeasonalPatternRequest true "Analysis parameters"
// @Success 200 {object} object "AI service response, passed through verbatim"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "AI service unavailable"
// @Security BearerAuth
// @Router /forecast/seasonal-patterns [post]
func (h *forecastHandler) seasonalPatterns(c *gin.Context) {
	var req dto.SeasonalPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.proxy(c, func(tenantID string) (json.RawMessage, error) {
		return h.forecastService.SeasonalPatterns(c.Request.Context(), tenantID, req)
	})
}

func (h *forecastHandler) proxy(c *gin.Context, call func(tenantID string) (json.RawMessage, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	raw, err := call(tenantID)
	if err != nil {
		logger.Error("Forecast proxy call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Forecast service unavailable"})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}
