package authpw

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"docai/api/internal/store"
)

// mockUserStore is a mock implementation of UserStore for testing
type mockUserStore struct {
	users      map[string]store.User
	emailIndex map[string]string // email -> userID
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:      make(map[string]store.User),
		emailIndex: make(map[string]string),
	}
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	if userID, ok := m.emailIndex[email]; ok {
		return m.users[userID], nil
	}
	return store.User{}, store.ErrNotFound
}

func (m *mockUserStore) GetUserByID(ctx context.Context, id string) (store.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return store.User{}, store.ErrNotFound
}

func (m *mockUserStore) CreateUser(ctx context.Context, name, email, passwordHash string) (store.User, error) {
	if _, ok := m.emailIndex[email]; ok {
		return store.User{}, store.ErrEmailTaken
	}
	user := store.User{
		ID:           fmt.Sprintf("user-%d", len(m.users)+1),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	m.users[user.ID] = user
	m.emailIndex[email] = user.ID
	return user, nil
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := NewService(newMockUserStore())
	ctx := context.Background()

	user, err := svc.SignUp(ctx, SignUpRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected user ID")
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("password stored in plaintext")
	}

	got, err := svc.SignIn(ctx, SignInRequest{
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("signed in as %s, want %s", got.ID, user.ID)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := NewService(newMockUserStore())
	ctx := context.Background()

	tests := []struct {
		name string
		req  SignUpRequest
	}{
		{"missing name", SignUpRequest{Email: "a@example.com", Password: "long enough pw"}},
		{"missing email", SignUpRequest{Name: "A", Password: "long enough pw"}},
		{"missing password", SignUpRequest{Name: "A", Email: "a@example.com"}},
		{"bad email", SignUpRequest{Name: "A", Email: "not-an-email", Password: "long enough pw"}},
		{"short password", SignUpRequest{Name: "A", Email: "a@example.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SignUp(ctx, tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := NewService(newMockUserStore())
	ctx := context.Background()

	req := SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse battery"}
	if _, err := svc.SignUp(ctx, req); err != nil {
		t.Fatalf("first SignUp failed: %v", err)
	}

	_, err := svc.SignUp(ctx, req)
	if !errors.Is(err, store.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := NewService(newMockUserStore())
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, SignUpRequest{Name: "Ada", Email: "ada@example.com", Password: "correct horse battery"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	_, err := svc.SignIn(ctx, SignInRequest{Email: "ada@example.com", Password: "wrong password"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := NewService(newMockUserStore())

	_, err := svc.SignIn(context.Background(), SignInRequest{Email: "nobody@example.com", Password: "whatever pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}
