package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-attendance/internal/auth/errors"
	"go-attendance/internal/backend"
	"go-attendance/internal/kvstore"
	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend is the slice of the backend client auth needs.
type Backend interface {
	Login(ctx context.Context, req backend.LoginRequest) (backend.LoginResponse, error)
	Me(ctx context.Context) (backend.User, error)
}

type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Refresh(ctx context.Context, sessionID string) (LoginResponse, error)
	Me(ctx context.Context, sessionID string) (AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	ResolveToken(ctx context.Context, token string) (middleware.Principal, error)
}

type claims struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	backend Backend
	repo    Repository
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(b Backend, repo Repository, secret string, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		backend: b,
		repo:    repo,
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	res, err := s.backend.Login(ctx, backend.LoginRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		// Backend messages ("Invalid credentials", "Account disabled") reach the user as-is.
		return LoginResponse{}, err
	}
	if res.Token == "" {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	now := s.now()
	sess := Session{
		ID:           uuid.NewString(),
		UserID:       res.User.ID,
		Name:         res.User.Name,
		Email:        res.User.Email,
		Role:         strings.ToUpper(res.User.Role),
		BackendToken: res.Token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	return s.issue(ctx, sess)
}

func (s *service) Refresh(ctx context.Context, sessionID string) (LoginResponse, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return LoginResponse{}, err
	}
	sess.ExpiresAt = s.now().Add(s.ttl)
	return s.issue(ctx, sess)
}

func (s *service) issue(ctx context.Context, sess Session) (LoginResponse, error) {
	if err := s.repo.Save(ctx, sess, s.ttl); err != nil {
		s.logger.Error("save session failed", zap.String("user_id", sess.UserID), zap.Error(err))
		return LoginResponse{}, autherrors.ErrSessionStoreFailed
	}

	token, err := s.generateToken(sess)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return LoginResponse{
		User:        toAuthResponse(sess),
		AccessToken: token,
		ExpiresAt:   sess.ExpiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// Me re-validates the session against the backend so a revoked backend
// token ends the portal session too.
func (s *service) Me(ctx context.Context, sessionID string) (AuthResponse, error) {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return AuthResponse{}, err
	}

	u, err := s.backend.Me(contextutil.WithBackendToken(ctx, sess.BackendToken))
	if err != nil {
		if backend.IsUnauthorized(err) {
			_ = s.repo.Delete(ctx, sessionID)
			return AuthResponse{}, autherrors.ErrSessionExpired
		}
		contextutil.GetLogger(ctx, s.logger).Warn("backend me failed, serving session copy", zap.Error(err))
		return toAuthResponse(sess), nil
	}

	return AuthResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  strings.ToUpper(u.Role),
	}, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
		return err
	}
	return nil
}

func (s *service) ResolveToken(ctx context.Context, token string) (middleware.Principal, error) {
	c, err := s.parseToken(token)
	if err != nil {
		return middleware.Principal{}, err
	}

	sess, err := s.loadSession(ctx, c.SessionID)
	if err != nil {
		return middleware.Principal{}, err
	}

	return middleware.Principal{
		SessionID:    sess.ID,
		UserID:       sess.UserID,
		Role:         sess.Role,
		Name:         sess.Name,
		Email:        sess.Email,
		BackendToken: sess.BackendToken,
	}, nil
}

func (s *service) loadSession(ctx context.Context, id string) (Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.Error("load session failed", zap.String("session_id", id), zap.Error(err))
		}
		return Session{}, autherrors.ErrSessionExpired
	}
	if !sess.ExpiresAt.IsZero() && !s.now().Before(sess.ExpiresAt) {
		return Session{}, autherrors.ErrSessionExpired
	}
	return sess, nil
}

func (s *service) generateToken(sess Session) (string, error) {
	c := claims{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Role:      sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(s.now()),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *service) parseToken(token string) (claims, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims{}, autherrors.ErrTokenExpired
		}
		return claims{}, autherrors.ErrInvalidToken
	}
	if !parsed.Valid || c.SessionID == "" {
		return claims{}, autherrors.ErrInvalidToken
	}
	return c, nil
}

func toAuthResponse(s Session) AuthResponse {
	return AuthResponse{ID: s.UserID, Email: s.Email, Name: s.Name, Role: s.Role}
}
