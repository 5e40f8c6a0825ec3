package pgsql_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/coreledger/erp-backend/internal/apperrors"
	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/repositories/database/pgsql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const migrationsPath = "file://../../../../migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE TABLE exchange_rates, currencies, users, tenants CASCADE`)
	require.NoError(t, err)

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	require.NoError(t, err)
	migrator, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	require.NoError(t, err)
	require.NoError(t, migrator.Up())

	pgContainer = pg
	pgConnStr = dsn
}

func seedTenant(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	ctx := context.Background()
	tenantID := uuid.NewString()
	tenant := domain.Tenant{
		TenantID:    tenantID,
		Name:        "Acme " + tenantID[:8],
		IsActive:    true,
		AuditFields: testAudit(),
	}
	require.NoError(t, pgsql.NewRepositoryProvider(pool).TenantRepo.SaveTenant(ctx, tenant))
	return tenantID
}

func testAudit() domain.AuditFields {
	now := time.Now().UTC()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     "user-1",
		LastUpdatedAt: now,
		LastUpdatedBy: "user-1",
	}
}

func testCurrency(tenantID, code string, base bool) domain.Currency {
	return domain.Currency{
		CurrencyID:         uuid.NewString(),
		TenantID:           tenantID,
		CurrencyCode:       code,
		Name:               code + " currency",
		Symbol:             "¤",
		DecimalPlaces:      2,
		SymbolPosition:     domain.SymbolBefore,
		ThousandsSeparator: ",",
		DecimalSeparator:   ".",
		IsBaseCurrency:     base,
		SortOrder:          -1,
		IsActive:           true,
		AuditFields:        testAudit(),
	}
}

func countBaseCurrencies(t *testing.T, pool *pgxpool.Pool, tenantID string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM currencies WHERE tenant_id = $1 AND is_base_currency AND is_active`,
		tenantID).Scan(&n)
	require.NoError(t, err)
	return n
}

// ---------- CurrencyRepository tests ----------

func TestCurrencyRepository_BaseFlagMovesOnSave(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "USD", true)))
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "EUR", true)))

	base, err := repos.CurrencyRepo.FindBaseCurrency(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, "EUR", base.CurrencyCode, "the last base save wins")
	require.Equal(t, 1, countBaseCurrencies(t, pool, tenantID))

	usd, err := repos.CurrencyRepo.FindCurrencyByCode(ctx, tenantID, "USD")
	require.NoError(t, err)
	require.False(t, usd.IsBaseCurrency, "the previous base keeps everything but the flag")
	require.True(t, usd.IsActive)
}

func TestCurrencyRepository_BaseFlagMovesOnUpdate(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "USD", true)))
	eur := testCurrency(tenantID, "EUR", false)
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, eur))

	eur.IsBaseCurrency = true
	eur.SortOrder = 2
	require.NoError(t, repos.CurrencyRepo.UpdateCurrency(ctx, eur))

	base, err := repos.CurrencyRepo.FindBaseCurrency(ctx, tenantID)
	require.NoError(t, err)
	require.Equal(t, eur.CurrencyID, base.CurrencyID)
	require.Equal(t, 1, countBaseCurrencies(t, pool, tenantID))
}

func TestCurrencyRepository_ConcurrentBaseSaves(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	currencies := []domain.Currency{
		testCurrency(tenantID, "USD", true),
		testCurrency(tenantID, "EUR", true),
	}

	errs := make(chan error, len(currencies))
	var wg sync.WaitGroup
	for _, curr := range currencies {
		wg.Add(1)
		go func(c domain.Currency) {
			defer wg.Done()
			errs <- repos.CurrencyRepo.SaveCurrency(ctx, c)
		}(curr)
	}
	wg.Wait()
	close(errs)

	// The writes serialize on the tenant's rows; whichever interleaving the
	// database picks, at most one active base currency may remain.
	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	require.GreaterOrEqual(t, succeeded, 1)
	require.Equal(t, 1, countBaseCurrencies(t, pool, tenantID))
}

func TestCurrencyRepository_NoBaseConfigured(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "USD", false)))

	_, err := repos.CurrencyRepo.FindBaseCurrency(ctx, tenantID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCurrencyRepository_DuplicateCodeRejected(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "USD", false)))
	err := repos.CurrencyRepo.SaveCurrency(ctx, testCurrency(tenantID, "USD", false))
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

// ---------- ExchangeRateRepository tests ----------

func seedRate(t *testing.T, pool *pgxpool.Pool, tenantID, fromID, toID string, effective time.Time, expires *time.Time) domain.ExchangeRate {
	t.Helper()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		TenantID:       tenantID,
		FromCurrencyID: fromID,
		ToCurrencyID:   toID,
		Rate:           decimal.RequireFromString("0.92"),
		InverseRate:    decimal.RequireFromString("1.08695652"),
		EffectiveDate:  effective,
		ExpiresAt:      expires,
		Source:         domain.SourceManual,
		IsActive:       true,
		AuditFields:    testAudit(),
	}
	require.NoError(t, pgsql.NewRepositoryProvider(pool).ExchangeRateRepo.SaveExchangeRate(context.Background(), rate))
	return rate
}

func TestExchangeRateRepository_FindApplicableRate_InclusiveBounds(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	usd := testCurrency(tenantID, "USD", false)
	eur := testCurrency(tenantID, "EUR", false)
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, usd))
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, eur))

	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	stored := seedRate(t, pool, tenantID, usd.CurrencyID, eur.CurrencyID, effective, &expires)

	for _, asOf := range []time.Time{effective, expires, effective.AddDate(0, 3, 0)} {
		found, err := repos.ExchangeRateRepo.FindApplicableRate(ctx, tenantID, usd.CurrencyID, eur.CurrencyID, asOf)
		require.NoError(t, err, "window bounds are inclusive, asOf=%s", asOf)
		require.Equal(t, stored.ExchangeRateID, found.ExchangeRateID)
	}

	_, err := repos.ExchangeRateRepo.FindApplicableRate(ctx, tenantID, usd.CurrencyID, eur.CurrencyID, effective.Add(-time.Second))
	require.ErrorIs(t, err, apperrors.ErrNotFound, "before the window")

	_, err = repos.ExchangeRateRepo.FindApplicableRate(ctx, tenantID, usd.CurrencyID, eur.CurrencyID, expires.Add(time.Second))
	require.ErrorIs(t, err, apperrors.ErrNotFound, "after the window")
}

func TestExchangeRateRepository_FindApplicableRate_LatestEffectiveWins(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	usd := testCurrency(tenantID, "USD", false)
	eur := testCurrency(tenantID, "EUR", false)
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, usd))
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, eur))

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	seedRate(t, pool, tenantID, usd.CurrencyID, eur.CurrencyID, older, nil)
	latest := seedRate(t, pool, tenantID, usd.CurrencyID, eur.CurrencyID, newer, nil)

	found, err := repos.ExchangeRateRepo.FindApplicableRate(ctx, tenantID, usd.CurrencyID, eur.CurrencyID, newer.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Equal(t, latest.ExchangeRateID, found.ExchangeRateID, "overlapping windows resolve to the latest effective date")
}

func TestExchangeRateRepository_DeactivatedRateNotResolved(t *testing.T) {
	pool := setupPostgres(t)
	repos := pgsql.NewRepositoryProvider(pool)
	ctx := context.Background()
	tenantID := seedTenant(t, pool)

	usd := testCurrency(tenantID, "USD", false)
	eur := testCurrency(tenantID, "EUR", false)
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, usd))
	require.NoError(t, repos.CurrencyRepo.SaveCurrency(ctx, eur))

	effective := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := seedRate(t, pool, tenantID, usd.CurrencyID, eur.CurrencyID, effective, nil)

	require.NoError(t, repos.ExchangeRateRepo.DeactivateExchangeRate(ctx, tenantID, stored.ExchangeRateID, "user-2", time.Now().UTC()))

	_, err := repos.ExchangeRateRepo.FindApplicableRate(ctx, tenantID, usd.CurrencyID, eur.CurrencyID, effective.AddDate(0, 1, 0))
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
