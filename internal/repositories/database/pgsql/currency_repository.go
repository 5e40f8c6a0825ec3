package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	"github.com/coreledger/erp-backend/internal/models"
	"github.com/coreledger/erp-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const currencyColumns = `
	currency_id, tenant_id, currency_code, name, symbol, decimal_places,
	symbol_position, thousands_separator, decimal_separator, is_base_currency,
	sort_order, is_active, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for tenant currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency. When the currency is flagged as base
// currency, the flag is cleared on every other currency of the tenant in the
// same transaction, so the exclusivity invariant holds under concurrency.
// A negative sort order means "append at the end".
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if modelCurr.IsBaseCurrency {
		if err := clearBaseCurrencyFlag(ctx, tx, modelCurr.TenantID, "", modelCurr.LastUpdatedBy, modelCurr.LastUpdatedAt); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			CASE WHEN $11 < 0 THEN (SELECT COALESCE(MAX(c2.sort_order), 0) + 1 FROM currencies c2 WHERE c2.tenant_id = $2)
			     ELSE $11 END,
			$12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.TenantID,
		modelCurr.CurrencyCode,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.DecimalPlaces,
		modelCurr.SymbolPosition,
		modelCurr.ThousandsSeparator,
		modelCurr.DecimalSeparator,
		modelCurr.IsBaseCurrency,
		modelCurr.SortOrder,
		modelCurr.IsActive,
		modelCurr.DeletedAt,
		modelCurr.CreatedAt,
		modelCurr.CreatedBy,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: currency code %s already exists for tenant", apperrors.ErrDuplicate, modelCurr.CurrencyCode)
		}
		return fmt.Errorf("failed to save currency %s: %w", modelCurr.CurrencyCode, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateCurrency updates a currency in place, enforcing the base-currency
// exclusivity invariant transactionally when the flag is being set.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if modelCurr.IsBaseCurrency {
		if err := clearBaseCurrencyFlag(ctx, tx, modelCurr.TenantID, modelCurr.CurrencyID, modelCurr.LastUpdatedBy, modelCurr.LastUpdatedAt); err != nil {
			return err
		}
	}

	query := `
		UPDATE currencies SET
			currency_code = $3,
			name = $4,
			symbol = $5,
			decimal_places = $6,
			symbol_position = $7,
			thousands_separator = $8,
			decimal_separator = $9,
			is_base_currency = $10,
			sort_order = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE tenant_id = $1 AND currency_id = $2 AND is_active = TRUE;
	`
	tag, err := tx.Exec(ctx, query,
		modelCurr.TenantID,
		modelCurr.CurrencyID,
		modelCurr.CurrencyCode,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.DecimalPlaces,
		modelCurr.SymbolPosition,
		modelCurr.ThousandsSeparator,
		modelCurr.DecimalSeparator,
		modelCurr.IsBaseCurrency,
		modelCurr.SortOrder,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: currency code %s already exists for tenant", apperrors.ErrDuplicate, modelCurr.CurrencyCode)
		}
		return fmt.Errorf("failed to update currency %s: %w", modelCurr.CurrencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// RetireCurrency soft-deletes a currency (inactive + deletion timestamp).
func (r *PgxCurrencyRepository) RetireCurrency(ctx context.Context, tenantID, currencyID, retiredBy string, retiredAt time.Time) error {
	query := `
		UPDATE currencies SET
			is_active = FALSE,
			deleted_at = $3,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE tenant_id = $1 AND currency_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, currencyID, retiredAt, retiredBy)
	if err != nil {
		return fmt.Errorf("failed to retire currency %s: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its id within the tenant.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, tenantID, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies
		WHERE tenant_id = $1 AND currency_id = $2 AND is_active = TRUE;`
	return r.queryOne(ctx, query, tenantID, currencyID)
}

// FindCurrencyByCode retrieves a currency by its 3-letter code within the
// tenant. The caller normalizes the code to uppercase.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, tenantID, currencyCode string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies
		WHERE tenant_id = $1 AND currency_code = $2 AND is_active = TRUE;`
	return r.queryOne(ctx, query, tenantID, currencyCode)
}

// FindBaseCurrency retrieves the tenant's active base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, tenantID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies
		WHERE tenant_id = $1 AND is_base_currency = TRUE AND is_active = TRUE;`
	return r.queryOne(ctx, query, tenantID)
}

// ListCurrencies retrieves all active currencies of the tenant.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, tenantID string) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies
		WHERE tenant_id = $1 AND is_active = TRUE
		ORDER BY sort_order, currency_code;`

	rows, err := r.Pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, scanCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

func (r *PgxCurrencyRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency: %w", err)
	}
	modelCurr, err := pgx.CollectOneRow(rows, scanCurrency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan currency: %w", err)
	}

	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

func scanCurrency(row pgx.CollectableRow) (models.Currency, error) {
	var c models.Currency
	err := row.Scan(
		&c.CurrencyID,
		&c.TenantID,
		&c.CurrencyCode,
		&c.Name,
		&c.Symbol,
		&c.DecimalPlaces,
		&c.SymbolPosition,
		&c.ThousandsSeparator,
		&c.DecimalSeparator,
		&c.IsBaseCurrency,
		&c.SortOrder,
		&c.IsActive,
		&c.DeletedAt,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// clearBaseCurrencyFlag removes the base-currency flag from every currency of
// the tenant except excludeID (empty = no exclusion).
func clearBaseCurrencyFlag(ctx context.Context, tx pgx.Tx, tenantID, excludeID, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE currencies SET
			is_base_currency = FALSE,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE tenant_id = $1 AND is_base_currency = TRUE AND currency_id != $2;
	`
	if _, err := tx.Exec(ctx, query, tenantID, excludeID, updatedAt, updatedBy); err != nil {
		return fmt.Errorf("failed to clear base currency flag for tenant %s: %w", tenantID, err)
	}
	return nil
}
