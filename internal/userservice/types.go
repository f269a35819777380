package userservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTokenTTL time.Duration = time.Hour

	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
	bcryptCost        = 12
)

type UserService struct {
	m      Model
	tokens *TokenService
}

// Model is the credential store. Implementations never return the password hash from
// getUserByID.
type Model interface {
	insertUser(ctx context.Context, u *User) error
	getUserByEmail(ctx context.Context, email string) (*User, error)
	getUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Password struct {
	hash []byte `json:"-"`
}

type SignupInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthToken is the bearer token handed to the client after signup or login.
type AuthToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
