package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	"github.com/coreledger/erp-backend/internal/models"
	"github.com/coreledger/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tenantColumns = `
	tenant_id, name, description, default_currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTenantRepository struct {
	BaseRepository
}

// newPgxTenantRepository creates a new repository for tenant data.
func newPgxTenantRepository(pool *pgxpool.Pool) portsrepo.TenantRepositoryFacade {
	return &PgxTenantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TenantRepositoryFacade = (*PgxTenantRepository)(nil)

// SaveTenant persists a new tenant.
func (r *PgxTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	modelTenant := mapping.ToModelTenant(tenant)

	query := `INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := r.Pool.Exec(ctx, query,
		modelTenant.TenantID,
		modelTenant.Name,
		modelTenant.Description,
		modelTenant.DefaultCurrencyCode,
		modelTenant.IsActive,
		modelTenant.CreatedAt,
		modelTenant.CreatedBy,
		modelTenant.LastUpdatedAt,
		modelTenant.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tenant %s already exists", apperrors.ErrDuplicate, modelTenant.Name)
		}
		return fmt.Errorf("failed to save tenant %s: %w", modelTenant.TenantID, err)
	}
	return nil
}

// FindTenantByID retrieves a tenant by its id.
func (r *PgxTenantRepository) FindTenantByID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
		WHERE tenant_id = $1 AND is_active = TRUE;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}
	modelTenant, err := pgx.CollectOneRow(rows, scanTenant)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan tenant: %w", err)
	}

	domainTenant := mapping.ToDomainTenant(modelTenant)
	return &domainTenant, nil
}

// ListTenants retrieves all active tenants.
func (r *PgxTenantRepository) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants
		WHERE is_active = TRUE
		ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	modelTenants, err := pgx.CollectRows(rows, scanTenant)
	if err != nil {
		return nil, fmt.Errorf("failed to scan tenants: %w", err)
	}

	return mapping.ToDomainTenantSlice(modelTenants), nil
}

func scanTenant(row pgx.CollectableRow) (models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.TenantID,
		&t.Name,
		&t.Description,
		&t.DefaultCurrencyCode,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}
