package domain

// Tenant represents an isolated customer organization. All currency and
// exchange-rate data is partitioned by tenant; there is no cross-tenant
// visibility.
type Tenant struct {
	TenantID            string  `json:"tenantID"` // Primary Key (UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description,omitempty"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserTenantRole defines a user's role within a tenant.
type UserTenantRole string

const (
	RoleAdmin  UserTenantRole = "ADMIN"
	RoleMember UserTenantRole = "MEMBER"
)
