package models

import "time"

// Currency is the database representation of a tenant currency definition.
type Currency struct {
	CurrencyID         string     `json:"currencyID"`
	TenantID           string     `json:"tenantID"`
	CurrencyCode       string     `json:"currencyCode"` // Uppercase, unique per tenant
	Name               string     `json:"name"`
	Symbol             string     `json:"symbol"`
	DecimalPlaces      int        `json:"decimalPlaces"`
	SymbolPosition     string     `json:"symbolPosition"`
	ThousandsSeparator string     `json:"thousandsSeparator"`
	DecimalSeparator   string     `json:"decimalSeparator"`
	IsBaseCurrency     bool       `json:"isBaseCurrency"`
	SortOrder          int        `json:"sortOrder"`
	IsActive           bool       `json:"isActive"`
	DeletedAt          *time.Time `json:"-"`
	AuditFields
}
