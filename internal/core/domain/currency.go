package domain

import "time"

// SymbolPosition controls where a currency symbol is rendered relative to the amount.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "BEFORE"
	SymbolAfter  SymbolPosition = "AFTER"
)

// Currency represents a tenant-scoped currency definition.
// DecimalPlaces is the single source of truth for monetary rounding
// when converting into this currency.
type Currency struct {
	CurrencyID         string         `json:"currencyID"` // Primary Key (UUID)
	TenantID           string         `json:"tenantID"`   // FK -> tenants.tenant_id
	CurrencyCode       string         `json:"currencyCode"` // 3-letter code, uppercase, unique per tenant
	Name               string         `json:"name"`         // e.g., "US Dollar"
	Symbol             string         `json:"symbol"`       // e.g., "$"
	DecimalPlaces      int            `json:"decimalPlaces"` // 0..4
	SymbolPosition     SymbolPosition `json:"symbolPosition"`
	ThousandsSeparator string         `json:"thousandsSeparator"`
	DecimalSeparator   string         `json:"decimalSeparator"`
	IsBaseCurrency     bool           `json:"isBaseCurrency"`
	SortOrder          int            `json:"sortOrder"`
	IsActive           bool           `json:"isActive"`
	DeletedAt          *time.Time     `json:"-"` // Soft delete timestamp
	AuditFields
}
