package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the database representation of an exchange rate record.
type ExchangeRate struct {
	ExchangeRateID  string          `json:"exchangeRateID"`
	TenantID        string          `json:"tenantID"`
	FromCurrencyID  string          `json:"fromCurrencyID"`
	ToCurrencyID    string          `json:"toCurrencyID"`
	Rate            decimal.Decimal `json:"rate"`
	InverseRate     decimal.Decimal `json:"inverseRate"`
	EffectiveDate   time.Time       `json:"effectiveDate"`
	ExpiresAt       *time.Time      `json:"expiresAt"`
	Source          string          `json:"source"`
	SourceReference string          `json:"sourceReference"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
