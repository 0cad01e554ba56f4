package user

import (
	"context"
	"net/http"
	"testing"

	"go-attendance/internal/backend"
	"go-attendance/internal/shared/apperror"
	usererrors "go-attendance/internal/user/errors"
	"go-attendance/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and proxies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := NewService(repo)

		repo.EXPECT().
			CreateUser(gomock.Any(), backend.CreateUserRequest{
				Name: "Nimal Perera", Email: "nimal@example.com", Password: "secret123", Role: "EMPLOYEE",
			}).
			Return(backend.User{ID: "u-9", Name: "Nimal Perera", Email: "nimal@example.com", Role: "EMPLOYEE"}, nil)

		resp, err := svc.Create(ctx, CreateUserRequest{
			Name: " Nimal Perera ", Email: "Nimal@Example.com", Password: "secret123", Role: "employee",
		})

		assert.NoError(t, err)
		assert.Equal(t, "u-9", resp.ID)
		assert.Equal(t, "EMPLOYEE", resp.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(mock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, CreateUserRequest{Name: "x", Email: "x@example.com", Password: "secret123", Role: "MANAGER"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("rejects short password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewService(mock.NewMockRepository(ctrl))

		_, err := svc.Create(ctx, CreateUserRequest{Name: "x", Email: "x@example.com", Password: "short", Role: "ADMIN"})
		assert.ErrorIs(t, err, usererrors.ErrInvalidPassword)
	})

	t.Run("backend message surfaces verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		svc := NewService(repo)

		backendErr := apperror.New(apperror.CodeUpstreamError, "Email already registered", http.StatusConflict)
		repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(backend.User{}, backendErr)

		_, err := svc.Create(ctx, CreateUserRequest{Name: "x", Email: "x@example.com", Password: "secret123", Role: "ADMIN"})
		assert.ErrorIs(t, err, backendErr)
		assert.Equal(t, "Email already registered", apperror.ToHTTP(err).Message)
	})
}

func TestService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockRepository(ctrl)
	svc := NewService(repo)

	repo.EXPECT().ListUsers(gomock.Any()).Return([]backend.User{
		{ID: "1", Name: "A", Email: "a@example.com", Role: "ADMIN", CreatedAt: "2026-01-01"},
		{ID: "2", Name: "B", Email: "b@example.com", Role: "EMPLOYEE"},
	}, nil)

	resp, err := svc.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "2026-01-01", resp[0].CreatedAt)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		repo.EXPECT().DeleteUser(gomock.Any(), "u-2").Return(nil)

		assert.NoError(t, NewService(repo).Delete(ctx, "u-1", "u-2"))
	})

	t.Run("self delete refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		err := NewService(mock.NewMockRepository(ctrl)).Delete(ctx, "u-1", "u-1")
		assert.ErrorIs(t, err, usererrors.ErrCannotDeleteSelf)
	})

	t.Run("empty id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		err := NewService(mock.NewMockRepository(ctrl)).Delete(ctx, "u-1", "")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockRepository(ctrl)
		repo.EXPECT().
			ResetPassword(gomock.Any(), "u-2", backend.ResetPasswordRequest{NewPassword: "newsecret"}).
			Return(nil)

		assert.NoError(t, NewService(repo).ResetPassword(ctx, "u-2", "newsecret"))
	})

	t.Run("too short", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		err := NewService(mock.NewMockRepository(ctrl)).ResetPassword(ctx, "u-2", "1234567")
		assert.ErrorIs(t, err, usererrors.ErrInvalidPassword)
	})
}
