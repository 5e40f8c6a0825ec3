package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/coreledger/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.listExchangeRates)
		rates.GET("/:from/:to", h.resolveRate)
		rates.PUT("/id/:id", h.updateExchangeRate)
		rates.DELETE("/id/:id", h.deactivateExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Stores a new rate record for a currency pair. The inverse rate is derived server-side.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.rateService.CreateExchangeRate(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create exchange rate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(created))
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves one page of the tenant's rate records, newest effective date first
// @Tags exchange-rates
// @Produce  json
// @Param   fromCurrencyID query string false "Filter by source currency id"
// @Param   toCurrencyID query string false "Filter by target currency id"
// @Param   date query string false "Only rates applicable at this RFC3339 instant"
// @Param   limit query int false "Page size (default 50, max 200)"
// @Param   pageToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListExchangeRatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rates, nextToken, err := h.rateService.ListExchangeRates(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, nextToken))
}

// resolveRate godoc
// @Summary Resolve the rate for a currency pair
// @Description Resolves the applicable rate for a pair at an optional date (default now). A same-currency pair resolves to 1; a missing direct rate falls back to the inverse of the reversed pair.
// @Tags exchange-rates
// @Produce  json
// @Param   from path string true "Source currency code"
// @Param   to path string true "Target currency code"
// @Param   date query string false "RFC3339 instant to resolve at"
// @Success 200 {object} dto.RateResolutionResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "No applicable rate"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := c.Param("from")
	toCode := c.Param("to")

	asOf := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected RFC3339"})
			return
		}
		asOf = parsed
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resolution, err := h.rateService.ResolveRateByCodes(c.Request.Context(), tenantID, fromCode, toCode, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResolutionResponse(fromCode, toCode, resolution))
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description Applies a partial update to a rate record. A rate change recomputes the inverse atomically.
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   id path string true "Exchange rate ID (UUID)"
// @Param   rate body dto.UpdateExchangeRateRequest true "Fields to update"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/id/{id} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("id")

	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.rateService.UpdateExchangeRate(c.Request.Context(), tenantID, rateID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(updated))
}

// deactivateExchangeRate godoc
// @Summary Deactivate an exchange rate
// @Description Soft-deletes a rate record so it no longer takes part in resolution
// @Tags exchange-rates
// @Produce  json
// @Param   id path string true "Exchange rate ID (UUID)"
// @Success 204 "Exchange rate deactivated"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Security BearerAuth
// @Router /exchange-rates/id/{id} [delete]
func (h *exchangeRateHandler) deactivateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.rateService.DeactivateExchangeRate(c.Request.Context(), tenantID, rateID, userID); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate exchange rate")
		return
	}

	c.Status(http.StatusNoContent)
}
