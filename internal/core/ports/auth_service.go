package ports

import (
	"context"

	"github.com/taskflow/task-manager/internal/core/domain"
)

// AuthService registers accounts, issues bearer tokens and resolves them.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	TokenVerifier
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}
