package dto

import (
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
)

// CreateTenantRequest defines the data needed to create a new tenant.
type CreateTenantRequest struct {
	Name                string  `json:"name" binding:"required"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode" binding:"omitempty,currencycode"`
}

// TenantResponse defines the data returned for a tenant.
type TenantResponse struct {
	TenantID            string    `json:"tenantID"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	CreatedBy           string    `json:"createdBy"`
}

// ToTenantResponse converts a domain.Tenant to TenantResponse DTO
func ToTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		TenantID:            t.TenantID,
		Name:                t.Name,
		Description:         t.Description,
		DefaultCurrencyCode: t.DefaultCurrencyCode,
		IsActive:            t.IsActive,
		CreatedAt:           t.CreatedAt,
		CreatedBy:           t.CreatedBy,
	}
}

// ToListTenantResponse converts a slice of domain Tenants to response DTOs
func ToListTenantResponse(tenants []domain.Tenant) []TenantResponse {
	res := make([]TenantResponse, len(tenants))
	for i := range tenants {
		res[i] = ToTenantResponse(&tenants[i])
	}
	return res
}
