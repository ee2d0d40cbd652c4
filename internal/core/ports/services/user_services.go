package services

import (
	"context"

	"github.com/edusuite/school_finance_api/internal/core/domain"
	"github.com/edusuite/school_finance_api/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// UserSvcFacade manages application users and authentication lookups.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// Authenticate verifies email+password and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// CreateOAuthUser finds or creates the user matching a verified external
	// identity. New users get the AUDITOR role.
	CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, actorUserID string, params dto.ListUsersParams) ([]domain.User, error)
	UpdateUser(ctx context.Context, actorUserID, targetUserID string, req dto.UpdateUserRequest) (*domain.User, error)
	// UpdateUserRole reassigns a role; only SUPER_ADMIN may do this.
	UpdateUserRole(ctx context.Context, actorUserID, targetUserID string, role domain.Role) (*domain.User, error)
	DeactivateUser(ctx context.Context, actorUserID, targetUserID string) error
}

// TokenSvcFacade issues and validates the application's own tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, error)
	// IssueRefreshToken creates a refresh token for the user and stores its
	// hash for later validation; the raw token goes into an HTTP-only cookie.
	IssueRefreshToken(ctx context.Context, userID string) (string, error)
	// ValidateRefreshToken checks a raw refresh token against the stored hash
	// and returns the owning user.
	ValidateRefreshToken(ctx context.Context, rawToken string) (*domain.User, error)
	RevokeRefreshToken(ctx context.Context, userID string) error
}

// GoogleOAuthSvcFacade wraps the Google side of the sign-in flow.
type GoogleOAuthSvcFacade interface {
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
