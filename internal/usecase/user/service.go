package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/repository"
)

// SignupInput represents the input parameters for creating an account.
type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Service provides account management use cases.
type Service struct {
	Repo repository.UserRepository
}

// Signup registers a new account.
// Returns a ValidationError if a required field is missing.
// Returns ErrPasswordMismatch if the two passwords differ.
// Returns ErrUsernameTaken if the username is already registered.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if in.Username == "" {
		return nil, &entity.ValidationError{Field: "username", Message: "is required"}
	}
	if in.Password == "" {
		return nil, &entity.ValidationError{Field: "password", Message: "is required"}
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	taken, err := s.Repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return account, nil
}

// Login verifies the given credentials and returns the matching account.
// Returns ErrInvalidCredentials for an unknown username or a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// Get retrieves an account by ID. Returns nil if the account does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	account, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return account, nil
}
