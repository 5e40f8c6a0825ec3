package domain

// User represents an authenticated operator of the system. Users belong
// to exactly one tenant; the auth middleware resolves the tenant from the
// authenticated user.
type User struct {
	UserID       string         `json:"userID"` // Primary Key (UUID)
	TenantID     string         `json:"tenantID"`
	Username     string         `json:"username"`
	Name         string         `json:"name"`
	PasswordHash string         `json:"-"` // bcrypt hash, never serialized
	Role         UserTenantRole `json:"role"`
	IsActive     bool           `json:"isActive"`
	AuditFields
}
