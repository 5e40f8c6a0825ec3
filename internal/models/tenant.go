package models

// Tenant is the database representation of a tenant organization.
type Tenant struct {
	TenantID            string  `json:"tenantID"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}
