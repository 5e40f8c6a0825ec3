package services

import (
	"context"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/dto"
)

// TenantReaderSvc defines read operations for tenants.
type TenantReaderSvc interface {
	// GetTenantByID retrieves a tenant by its id.
	GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error)

	// ListTenants retrieves all active tenants.
	ListTenants(ctx context.Context) ([]domain.Tenant, error)
}

// TenantWriterSvc defines write operations for tenants.
type TenantWriterSvc interface {
	// CreateTenant provisions a new tenant.
	CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error)
}

// TenantSvcFacade combines all tenant-related service interfaces
type TenantSvcFacade interface {
	TenantReaderSvc
	TenantWriterSvc
}
