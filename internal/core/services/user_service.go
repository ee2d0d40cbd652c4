package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
	portssvc "github.com/edusuite/school_finance_api/internal/core/ports/services"
	"github.com/edusuite/school_finance_api/internal/dto"
	"github.com/edusuite/school_finance_api/internal/middleware"
	"github.com/edusuite/school_finance_api/internal/utils"
)

type userService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user management service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The very first account becomes SUPER_ADMIN so a fresh deployment can be
	// administered; everyone after that starts as AUDITOR until promoted.
	role := domain.RoleAuditor
	anyone, err := s.userRepo.FindUsers(ctx, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing users: %w", err)
	}
	if len(anyone) == 0 {
		role = domain.RoleSuperAdmin
	}

	now := time.Now()
	newUserID := uuid.NewString()
	user := domain.User{
		UserID:       newUserID,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user == nil || !user.IsActive || !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Authentication failed", slog.String("email", email))
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !emailVerified {
		return nil, fmt.Errorf("%w: email not verified by provider", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if user != nil {
		if !user.IsActive {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}

	now := time.Now()
	newUserID := uuid.NewString()
	newUser := domain.User{
		UserID:       newUserID,
		Email:        email,
		FirstName:    name,
		Role:         domain.RoleAuditor,
		IsActive:     true,
		AuthProvider: provider,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to save oauth user", slog.String("error", err.Error()), slog.String("provider_user_id", providerUserID))
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	logger.Info("OAuth user created", slog.String("user_id", newUser.UserID), slog.String("provider", string(provider)))
	return &newUser, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actorUserID string, params dto.ListUsersParams) ([]domain.User, error) {
	if _, err := resolveActor(ctx, s.userRepo, actorUserID); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorUserID, targetUserID string, req dto.UpdateUserRequest) (*domain.User, error) {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != targetUserID {
		if err := requireSuperAdmin(actor); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, actorUserID, targetUserID string, role domain.Role) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	user, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for role update: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	user.Role = role
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	logger.Info("User role updated", slog.String("target_user_id", targetUserID), slog.String("role", string(role)))
	return user, nil
}

func (s *userService) DeactivateUser(ctx context.Context, actorUserID, targetUserID string) error {
	actor, err := resolveActor(ctx, s.userRepo, actorUserID)
	if err != nil {
		return err
	}
	if err := requireSuperAdmin(actor); err != nil {
		return err
	}
	if actor.UserID == targetUserID {
		return fmt.Errorf("%w: cannot deactivate own account", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to load user for deactivation: %w", err)
	}
	if user == nil {
		return apperrors.ErrNotFound
	}

	now := time.Now()
	user.IsActive = false
	user.LastUpdatedAt = now
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	// Drop any live refresh token so the session cannot be renewed.
	if err := s.userRepo.SetRefreshTokenHash(ctx, targetUserID, "", now); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
