package user

import (
	"context"

	"go-attendance/internal/backend"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock

// Repository is the backend user directory.
type Repository interface {
	ListUsers(ctx context.Context) ([]backend.User, error)
	CreateUser(ctx context.Context, req backend.CreateUserRequest) (backend.User, error)
	DeleteUser(ctx context.Context, id string) error
	ResetPassword(ctx context.Context, id string, req backend.ResetPasswordRequest) error
}
