package domain

import (
	"context"
	"time"
)

// User roles. Role is fixed at creation; there is no mutation path.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// User represents an application user (admin or student).
// swagger:model User
type User struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordHasher handles password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user and role.
type TokenVerifier interface {
	Verify(token string) (userID int64, role string, err error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// AuthService defines the login business logic.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, user *User, err error)
}
