package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
	"github.com/google/uuid"
)

// TenantService provisions and reads tenants.
type TenantService struct {
	BaseService
	tenantRepo portsrepo.TenantRepositoryFacade
}

// NewTenantService creates a new TenantService.
func NewTenantService(tenantRepo portsrepo.TenantRepositoryFacade) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

var _ portssvc.TenantSvcFacade = (*TenantService)(nil)

// CreateTenant provisions a new tenant.
func (s *TenantService) CreateTenant(ctx context.Context, req dto.CreateTenantRequest, creatorUserID string) (*domain.Tenant, error) {
	now := time.Now()

	var defaultCode *string
	if req.DefaultCurrencyCode != nil {
		code := strings.ToUpper(*req.DefaultCurrencyCode)
		defaultCode = &code
	}

	tenant := domain.Tenant{
		TenantID:            uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		DefaultCurrencyCode: defaultCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.tenantRepo.SaveTenant(ctx, tenant); err != nil {
		s.LogError(ctx, err, "failed to create tenant", slog.String("tenant_name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("tenant_name", tenant.Name))
	return &tenant, nil
}

// GetTenantByID retrieves a tenant by its id.
func (s *TenantService) GetTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	return s.tenantRepo.FindTenantByID(ctx, tenantID)
}

// ListTenants retrieves all active tenants.
func (s *TenantService) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	tenants, err := s.tenantRepo.ListTenants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	if tenants == nil {
		return []domain.Tenant{}, nil
	}
	return tenants, nil
}
