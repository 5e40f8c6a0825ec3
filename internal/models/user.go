package models

// User is the database representation of an application user.
type User struct {
	UserID       string `json:"userID"`
	TenantID     string `json:"tenantID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
