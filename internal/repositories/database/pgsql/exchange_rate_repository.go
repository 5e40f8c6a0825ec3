package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	"github.com/coreledger/erp-backend/internal/models"
	"github.com/coreledger/erp-backend/internal/utils/mapping"
	"github.com/coreledger/erp-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, tenant_id, from_currency_id, to_currency_id,
	rate, inverse_rate, effective_date, expires_at,
	source, source_reference, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

const defaultRatePageLimit = 50

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate persists a new rate record.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.TenantID,
		modelRate.FromCurrencyID,
		modelRate.ToCurrencyID,
		modelRate.Rate,
		modelRate.InverseRate,
		modelRate.EffectiveDate,
		modelRate.ExpiresAt,
		modelRate.Source,
		modelRate.SourceReference,
		modelRate.IsActive,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s: %w", modelRate.ExchangeRateID, err)
	}
	return nil
}

// UpdateExchangeRate updates rate, inverse rate and validity window in a
// single statement so no reader can observe a mismatched rate/inverse pair.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	query := `
		UPDATE exchange_rates SET
			rate = $3,
			inverse_rate = $4,
			effective_date = $5,
			expires_at = $6,
			source = $7,
			source_reference = $8,
			last_updated_at = $9,
			last_updated_by = $10
		WHERE tenant_id = $1 AND exchange_rate_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelRate.TenantID,
		modelRate.ExchangeRateID,
		modelRate.Rate,
		modelRate.InverseRate,
		modelRate.EffectiveDate,
		modelRate.ExpiresAt,
		modelRate.Source,
		modelRate.SourceReference,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update exchange rate %s: %w", modelRate.ExchangeRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateExchangeRate soft-deletes a rate record.
func (r *PgxExchangeRateRepository) DeactivateExchangeRate(ctx context.Context, tenantID, rateID, deactivatedBy string, deactivatedAt time.Time) error {
	query := `
		UPDATE exchange_rates SET
			is_active = FALSE,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE tenant_id = $1 AND exchange_rate_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, tenantID, rateID, deactivatedAt, deactivatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate exchange rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindExchangeRateByID retrieves a rate record by its id within the tenant.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, tenantID, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates
		WHERE tenant_id = $1 AND exchange_rate_id = $2;`
	return r.queryOne(ctx, query, tenantID, rateID)
}

// FindApplicableRate retrieves the active rate for the exact ordered pair
// whose validity window covers asOf. Overlapping windows resolve to the one
// with the latest effective date, ties broken by most recent creation, so the
// result is deterministic.
func (r *PgxExchangeRateRepository) FindApplicableRate(ctx context.Context, tenantID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates
		WHERE tenant_id = $1
		  AND from_currency_id = $2
		  AND to_currency_id = $3
		  AND is_active = TRUE
		  AND effective_date <= $4
		  AND (expires_at IS NULL OR expires_at >= $4)
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1;`
	return r.queryOne(ctx, query, tenantID, fromCurrencyID, toCurrencyID, asOf)
}

// ListExchangeRates retrieves active rate records for the tenant, newest
// effective date first, using keyset pagination on
// (effective_date, created_at, exchange_rate_id).
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, tenantID string, filter portsrepo.ListRatesFilter) ([]domain.ExchangeRate, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRatePageLimit
	}

	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates
		WHERE tenant_id = $1 AND is_active = TRUE`
	args := []any{tenantID}

	if filter.FromCurrencyID != "" {
		args = append(args, filter.FromCurrencyID)
		query += ` AND from_currency_id = $` + strconv.Itoa(len(args))
	}
	if filter.ToCurrencyID != "" {
		args = append(args, filter.ToCurrencyID)
		query += ` AND to_currency_id = $` + strconv.Itoa(len(args))
	}
	if filter.AsOf != nil {
		args = append(args, *filter.AsOf)
		n := strconv.Itoa(len(args))
		query += ` AND effective_date <= $` + n + ` AND (expires_at IS NULL OR expires_at >= $` + n + `)`
	}

	if filter.PageToken != "" {
		effectiveDate, createdAt, rateID, err := pagination.DecodeRateToken(filter.PageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, effectiveDate, createdAt, rateID)
		base := len(args) - 2
		query += fmt.Sprintf(` AND (effective_date, created_at, exchange_rate_id) < ($%d, $%d, $%d)`, base, base+1, base+2)
	}

	args = append(args, limit+1) // one extra row to detect the next page
	query += ` ORDER BY effective_date DESC, created_at DESC, exchange_rate_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, scanExchangeRate)
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	nextToken := ""
	if len(modelRates) > limit {
		modelRates = modelRates[:limit]
		last := modelRates[limit-1]
		nextToken = pagination.EncodeRateToken(last.EffectiveDate, last.CreatedAt, last.ExchangeRateID)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nextToken, nil
}

func (r *PgxExchangeRateRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.ExchangeRate, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rate: %w", err)
	}
	modelRate, err := pgx.CollectOneRow(rows, scanExchangeRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

func scanExchangeRate(row pgx.CollectableRow) (models.ExchangeRate, error) {
	var er models.ExchangeRate
	err := row.Scan(
		&er.ExchangeRateID,
		&er.TenantID,
		&er.FromCurrencyID,
		&er.ToCurrencyID,
		&er.Rate,
		&er.InverseRate,
		&er.EffectiveDate,
		&er.ExpiresAt,
		&er.Source,
		&er.SourceReference,
		&er.IsActive,
		&er.CreatedAt,
		&er.CreatedBy,
		&er.LastUpdatedAt,
		&er.LastUpdatedBy,
	)
	return er, err
}
