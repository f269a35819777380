package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sushihentaime/blogapi/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("invalid credentials")
)

func NewService(m Model, tokens *TokenService) *UserService {
	return &UserService{
		m:      m,
		tokens: tokens,
	}
}

// CreateUser registers a new account and returns it together with a fresh access token.
func (s *UserService) CreateUser(ctx context.Context, in SignupInput) (*User, *AuthToken, error) {
	// Perform validation
	v := common.NewValidator()
	validateSignup(v, in)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	u := User{
		ID:        uuid.New(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}

	// Set the password hash
	err := u.Password.set(in.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("could not hash password: %w", err)
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, nil, err
	}

	token, err := s.tokens.Issue(&u)
	if err != nil {
		return nil, nil, err
	}

	u.Password = Password{}

	return &u, token, nil
}

// LoginUser checks the credentials and issues an access token. An unknown email and a wrong
// password both return ErrAuthenticationFailure.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *AuthToken, error) {
	v := common.NewValidator()
	v.Check(email != "", "email", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			compareDummy(password)
			return nil, nil, ErrAuthenticationFailure
		default:
			return nil, nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil || !ok {
		return nil, nil, ErrAuthenticationFailure
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}

	user.Password = Password{}

	return user, token, nil
}

// GetUserByAccessToken verifies the token and loads the user it was issued for.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	return s.m.getUserByID(ctx, claims.UserID())
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.m.getUserByID(ctx, id)
}
