package pgsql

import (
	portsrepo "github.com/coreledger/erp-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository implementation onto a
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(pool),
		ExchangeRateRepo: newPgxExchangeRateRepository(pool),
		TenantRepo:       newPgxTenantRepository(pool),
		UserRepo:         newPgxUserRepository(pool),
	}
}
