package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/coreledger/erp-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for monetary conversion.
type conversionHandler struct {
	converter portssvc.ConverterSvc
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConverterSvc) *conversionHandler {
	return &conversionHandler{converter: cs}
}

// registerConversionRoutes registers routes related to conversion.
func registerConversionRoutes(rg *gin.RouterGroup, converter portssvc.ConverterSvc) {
	h := newConversionHandler(converter)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", h.convert)
		conversions.POST("/bulk", h.bulkConvert)
	}
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount using the rate applicable at the given date (default now), rounded to the target currency's decimal places
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion request"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency or rate not found"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.converter.Convert(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert amount")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// bulkConvert godoc
// @Summary Convert a batch of amounts
// @Description Converts up to 100 amounts in one call. Items that fail validation or rate resolution are omitted from the response; the batch itself only fails when it exceeds the cap.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   batch body dto.BulkConvertRequest true "Batch of conversion requests"
// @Success 200 {object} dto.BulkConversionResponse
// @Failure 400 {object} map[string]string "Invalid input or batch over the item cap"
// @Security BearerAuth
// @Router /conversions/bulk [post]
func (h *conversionHandler) bulkConvert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkConvert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.converter.BulkConvert(c.Request.Context(), tenantID, req.Conversions)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert batch")
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkConversionResponse(results))
}
