package services

import (
	"context"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/coreledger/erp-backend/internal/dto"
)

// UserReaderSvc defines read operations for users.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by its id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all active users of a tenant.
	ListUsers(ctx context.Context, tenantID string) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users.
type UserWriterSvc interface {
	// CreateUser registers a new user within the tenant.
	CreateUser(ctx context.Context, tenantID string, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
}

// UserAuthenticatorSvc verifies login credentials.
type UserAuthenticatorSvc interface {
	// Authenticate checks username/password and returns the user on success.
	// Failures surface as apperrors.ErrUnauthorized without detail.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

// TokenSvcFacade issues and validates access tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user, carrying the
	// user id as subject and the tenant id as a private claim.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
