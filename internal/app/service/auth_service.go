package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/session"
	"github.com/qkart/storefront/pkg/logger"
	"github.com/qkart/storefront/pkg/util"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooShort = errors.New("username must be at least 6 characters")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// AuthService handles login, registration and logout against the
// backend and owns session creation. Bad input is rejected client-side
// before any network call.
type AuthService interface {
	// Login exchanges credentials for a backend token and creates a new
	// session. Returns the session ID and the session.
	Login(ctx context.Context, username, password string) (string, *session.Session, error)

	// Register creates a new account. The user logs in afterwards.
	Register(ctx context.Context, username, password, confirmPassword string) error

	// Logout clears the session.
	Logout(ctx context.Context, sid string) error
}

type authService struct {
	client *api.Client
	store  session.Store
}

func NewAuthService(client *api.Client, store session.Store) AuthService {
	return &authService{client: client, store: store}
}

func validateCredentials(username, password string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *session.Session, error) {
	if err := validateCredentials(username, password); err != nil {
		logger.Warn("Login rejected: invalid input", map[string]interface{}{
			"username": username,
			"reason":   err.Error(),
		})
		return "", nil, err
	}

	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		logger.Warn("Login failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return "", nil, err
	}

	if info, err := util.PeekToken(resp.Token); err == nil && !info.ExpiresAt.IsZero() {
		logger.Debug("Session token issued", map[string]interface{}{
			"username":   resp.Username,
			"expires_at": info.ExpiresAt.Format(time.RFC3339),
		})
	}

	sid := uuid.NewString()
	sess := &session.Session{
		Token:    resp.Token,
		Username: resp.Username,
		Balance:  resp.Balance,
	}
	if err := s.store.Put(ctx, sid, sess); err != nil {
		logger.Error("Failed to persist session", err, map[string]interface{}{
			"username": resp.Username,
		})
		return "", nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"username": resp.Username,
		"balance":  resp.Balance,
	})
	return sid, sess, nil
}

func (s *authService) Register(ctx context.Context, username, password, confirmPassword string) error {
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) < 6 {
		return ErrUsernameTooShort
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if confirmPassword != password {
		return ErrPasswordMismatch
	}

	logger.Info("Registration attempt", map[string]interface{}{
		"username": username,
	})

	if err := s.client.Register(ctx, username, password); err != nil {
		logger.Warn("Registration failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return err
	}

	logger.Info("User registered", map[string]interface{}{
		"username": username,
	})
	return nil
}

func (s *authService) Logout(ctx context.Context, sid string) error {
	if err := s.store.Clear(ctx, sid); err != nil {
		logger.Error("Failed to clear session", err, nil)
		return err
	}

	logger.Info("User logged out", nil)
	return nil
}
