package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/utils"
	"github.com/edusuite/school_finance_api/pkg/config"
)

type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepository
}

// NewTokenService creates the token issuing service.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepository) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, userRepo: userRepo}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

func (s *tokenService) IssueRefreshToken(ctx context.Context, userID string) (string, error) {
	raw, err := utils.GenerateJWT(userID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	// Only the hash is stored, so a DB leak cannot mint sessions.
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, utils.HashRefreshToken(raw), time.Now()); err != nil {
		return "", fmt.Errorf("failed to store refresh token hash: %w", err)
	}
	return raw, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateJWT(rawToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	storedHash, err := s.userRepo.FindRefreshTokenHash(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token hash: %w", err)
	}
	if storedHash == "" || storedHash != utils.HashRefreshToken(rawToken) {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh token owner: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *tokenService) RevokeRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.SetRefreshTokenHash(ctx, userID, "", time.Now()); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
