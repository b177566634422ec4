package user_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"blogsmith/internal/domain/entity"
	"blogsmith/internal/usecase/user"
)

type fakeUserRepo struct {
	byName map[string]*entity.User
	byID   map[int64]*entity.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byName: map[string]*entity.User{},
		byID:   map[int64]*entity.User{},
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = f.nextID
	f.nextID++
	f.byName[u.Username] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byName[username], nil
}

func (f *fakeUserRepo) Get(_ context.Context, id int64) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byName[username]
	return ok, nil
}

/* ─────────── 1. Signup ─────────── */

func TestService_Signup(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &user.Service{Repo: repo}

	account, err := svc.Signup(context.Background(), user.SignupInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if err != nil {
		t.Fatalf("Signup err=%v", err)
	}
	if account.ID == 0 {
		t.Error("want persisted account with ID")
	}
	if account.PasswordHash == "secret123" {
		t.Error("password must be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestService_Signup_PasswordMismatch(t *testing.T) {
	svc := &user.Service{Repo: newFakeUserRepo()}

	_, err := svc.Signup(context.Background(), user.SignupInput{
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "different",
	})
	if !errors.Is(err, user.ErrPasswordMismatch) {
		t.Fatalf("want ErrPasswordMismatch, got %v", err)
	}
}

func TestService_Signup_UsernameTaken(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byName["alice"] = &entity.User{ID: 1, Username: "alice"}
	svc := &user.Service{Repo: repo}

	_, err := svc.Signup(context.Background(), user.SignupInput{
		Username:        "alice",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	if !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

func TestService_Signup_MissingFields(t *testing.T) {
	svc := &user.Service{Repo: newFakeUserRepo()}

	tests := []struct {
		name  string
		input user.SignupInput
	}{
		{name: "no username", input: user.SignupInput{Password: "p", ConfirmPassword: "p"}},
		{name: "no password", input: user.SignupInput{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.input)
			var vErr *entity.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("want ValidationError, got %v", err)
			}
		})
	}
}

/* ─────────── 2. Login ─────────── */

func TestService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &user.Service{Repo: repo}

	if _, err := svc.Signup(context.Background(), user.SignupInput{
		Username: "bob", Password: "hunter22", ConfirmPassword: "hunter22",
	}); err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	account, err := svc.Login(context.Background(), "bob", "hunter22")
	if err != nil {
		t.Fatalf("Login err=%v", err)
	}
	if account.Username != "bob" {
		t.Errorf("want username bob, got %q", account.Username)
	}
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &user.Service{Repo: repo}

	if _, err := svc.Signup(context.Background(), user.SignupInput{
		Username: "bob", Password: "hunter22", ConfirmPassword: "hunter22",
	}); err != nil {
		t.Fatalf("Signup err=%v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "unknown user", username: "nobody", password: "hunter22"},
		{name: "wrong password", username: "bob", password: "wrong"},
		{name: "empty username", username: "", password: "hunter22"},
		{name: "empty password", username: "bob", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, user.ErrInvalidCredentials) {
				t.Errorf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
