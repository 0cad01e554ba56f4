package user

import (
	"context"
	"strings"

	"go-attendance/internal/backend"
	"go-attendance/internal/domain"
	"go-attendance/internal/shared/contextutil"
	usererrors "go-attendance/internal/user/errors"

	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, mapToResponse(u))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != domain.RoleAdmin && role != domain.RoleEmployee {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if len(req.Password) < minPasswordLength {
		return UserResponse{}, usererrors.ErrInvalidPassword
	}

	created, err := s.repo.CreateUser(ctx, backend.CreateUserRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		log.Warn("create user failed", zap.String("email", req.Email), zap.Error(err))
		return UserResponse{}, err
	}

	log.Info("user created", zap.String("user_id", created.ID), zap.String("role", role))
	return mapToResponse(created), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return usererrors.ErrInvalidUserID
	}
	if id == actorID {
		return usererrors.ErrCannotDeleteSelf
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("user deleted", zap.String("target_user_id", id))
	return nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return usererrors.ErrInvalidUserID
	}
	if len(newPassword) < minPasswordLength {
		return usererrors.ErrInvalidPassword
	}

	if err := s.repo.ResetPassword(ctx, id, backend.ResetPasswordRequest{NewPassword: newPassword}); err != nil {
		return err
	}
	contextutil.GetLogger(ctx, s.logger).Info("password reset", zap.String("target_user_id", id))
	return nil
}

func mapToResponse(u backend.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
