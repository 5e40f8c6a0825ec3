package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coreledger/erp-backend/internal/core/domain"
	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/platform/config"
	"github.com/coreledger/erp-backend/internal/utils"
)

// TokenService issues signed access tokens.
type TokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new TokenService.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{cfg: cfg}
}

var _ portssvc.TokenSvcFacade = (*TokenService)(nil)

// GenerateAccessToken creates a signed JWT for the user, carrying the user id
// as subject and the tenant id as a private claim.
func (s *TokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, user.TenantID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
