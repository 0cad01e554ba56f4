package auth

import (
	"context"
	"time"

	"go-attendance/internal/kvstore"
)

type Repository interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	GetByID(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Save(ctx context.Context, s Session, ttl time.Duration) error {
	return kvstore.Save(ctx, r.store, SessionKey(s.ID), s, ttl)
}

// GetByID returns kvstore.ErrNotFound for unknown or expired sessions.
func (r *repository) GetByID(ctx context.Context, id string) (Session, error) {
	return kvstore.Load(ctx, r.store, SessionKey(id))
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return kvstore.Clear(ctx, r.store, SessionKey(id))
}
