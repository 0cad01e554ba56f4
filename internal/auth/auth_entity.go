package auth

import (
	"time"

	"go-attendance/internal/kvstore"
)

// Session is what the gateway remembers about a logged-in user. The backend
// token never leaves the server.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	BackendToken string    `json:"backend_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func SessionKey(id string) kvstore.Key[Session] {
	return kvstore.NewKey[Session]("session:" + id)
}
