package dto

// DemandForecastRequest mirrors the AI service's demand forecast contract.
// The tenant id is injected server-side from the request context.
type DemandForecastRequest struct {
	ProductID         string `json:"productId" binding:"required,uuid"`
	ForecastDays      int    `json:"forecastDays" binding:"omitempty,gte=1,lte=365"`
	IncludeConfidence *bool  `json:"includeConfidence"`
}

// StockOptimizationRequest mirrors the AI service's stock optimization contract.
type StockOptimizationRequest struct {
	ProductID    string   `json:"productId" binding:"required,uuid"`
	CurrentStock float64  `json:"currentStock" binding:"gte=0"`
	LeadTimeDays int      `json:"leadTimeDays" binding:"omitempty,gte=1,lte=90"`
	ServiceLevel *float64 `json:"serviceLevel" binding:"omitempty,gte=0,lte=1"`
}

// SeasonalPatternRequest mirrors the AI service's seasonal analysis contract.
type SeasonalPatternRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Years     int    `json:"years" binding:"omitempty,gte=1,lte=5"`
}
