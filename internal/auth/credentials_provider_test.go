package auth

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hypernova-labs/dashboard-service/internal/database"
	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-session-secret"

type mockUserStore struct {
	Users []models.User
	Err   error
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Users {
		if m.Users[i].Email == email {
			return &m.Users[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func signInForm(email, password string) url.Values {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	return form
}

func testUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing fixture password: %v", err)
	}
	return models.User{
		ID:           uuid.New(),
		Name:         "User",
		Email:        email,
		PasswordHash: string(hash),
	}
}

func TestCredentialsProvider_SignIn(t *testing.T) {
	t.Run("valid credentials return a verifiable session token", func(t *testing.T) {
		user := testUser(t, "user@nextmail.com", "123456")
		store := &mockUserStore{Users: []models.User{user}}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		token, err := p.SignIn(context.Background(), StrategyCredentials, signInForm(user.Email, "123456"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := ValidateSessionToken(token, testSecret)
		if err != nil {
			t.Fatalf("token does not validate: %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("unexpected user id in claims: %s", claims.UserID)
		}
		if claims.Email != user.Email {
			t.Errorf("unexpected email in claims: %q", claims.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		user := testUser(t, "user@nextmail.com", "123456")
		store := &mockUserStore{Users: []models.User{user}}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		_, err := p.SignIn(context.Background(), StrategyCredentials, signInForm(user.Email, "wrong"))

		assertAuthError(t, err, ErrorTypeCredentialsSignin)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := &mockUserStore{}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		_, err := p.SignIn(context.Background(), StrategyCredentials, signInForm("ghost@nextmail.com", "123456"))

		assertAuthError(t, err, ErrorTypeCredentialsSignin)
	})

	t.Run("missing credentials", func(t *testing.T) {
		store := &mockUserStore{}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		_, err := p.SignIn(context.Background(), StrategyCredentials, url.Values{})

		assertAuthError(t, err, ErrorTypeCredentialsSignin)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mockUserStore{Err: errors.New("connection refused")}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		_, err := p.SignIn(context.Background(), StrategyCredentials, signInForm("user@nextmail.com", "123456"))

		assertAuthError(t, err, ErrorTypeCallbackRoute)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		store := &mockUserStore{}
		p := NewCredentialsProvider(store, testSecret, time.Hour, testLogger())

		_, err := p.SignIn(context.Background(), "oauth", signInForm("user@nextmail.com", "123456"))

		assertAuthError(t, err, ErrorTypeCallbackRoute)
	})
}

func assertAuthError(t *testing.T, err error, want ErrorType) {
	t.Helper()
	var authErr *Error
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if authErr.Type != want {
		t.Errorf("expected error type %q, got %q", want, authErr.Type)
	}
}
