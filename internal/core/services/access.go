package services

import (
	"context"
	"fmt"

	"github.com/edusuite/school_finance_api/internal/apperrors"
	"github.com/edusuite/school_finance_api/internal/core/domain"
	portsrepo "github.com/edusuite/school_finance_api/internal/core/ports/repositories"
)

// resolveActor loads the acting user and refuses unknown or deactivated
// principals. Every mutating service call resolves its actor explicitly so
// role checks never depend on transport details.
func resolveActor(ctx context.Context, userRepo portsrepo.UserRepository, actorUserID string) (*domain.User, error) {
	actor, err := userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}
	if actor == nil || !actor.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return actor, nil
}

func requireFinanceAccess(actor *domain.User) error {
	if !actor.Role.HasFinanceAccess() {
		return fmt.Errorf("%w: finance access required", apperrors.ErrForbidden)
	}
	return nil
}

func requireBudgetAccess(actor *domain.User) error {
	if !actor.Role.HasBudgetAccess() {
		return fmt.Errorf("%w: budget access required", apperrors.ErrForbidden)
	}
	return nil
}

func requireSuperAdmin(actor *domain.User) error {
	if actor.Role != domain.RoleSuperAdmin {
		return fmt.Errorf("%w: requires SUPER_ADMIN", apperrors.ErrForbidden)
	}
	return nil
}
