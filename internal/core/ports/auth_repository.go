package ports

import (
	"context"

	"github.com/taskflow/task-manager/internal/core/domain"
)

// AuthRepository defines persistence for user accounts.
type AuthRepository interface {
	// FindByEmail expects an already-normalized address.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
