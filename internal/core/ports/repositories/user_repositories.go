package repositories

import (
	"context"
	"time"

	"github.com/edusuite/school_finance_api/internal/core/domain"
)

// UserRepository persists application users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) error
	// SetRefreshTokenHash stores the SHA256 hash of the user's current refresh
	// token; an empty hash clears it.
	SetRefreshTokenHash(ctx context.Context, userID, tokenHash string, updatedAt time.Time) error
	FindRefreshTokenHash(ctx context.Context, userID string) (string, error)
}
