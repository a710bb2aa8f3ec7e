package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/coffeelux/auth/internal/auth/domain"
	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/coffeelux/auth/pkg/cryptox"
	"github.com/coffeelux/auth/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionInvalid     = errors.New("session_invalid")
)

// AuthService owns login, logout, and per-request session resolution.
type AuthService struct {
	Store store.Store
	State state.Store

	// Now is overridable so expiry behaviour can be tested with a
	// fabricated clock. Nil means time.Now.
	Now func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login authenticates the email/password pair and issues a fresh session.
// Failures collapse to ErrInvalidCredentials so the response cannot reveal
// whether the email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.Session{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().GetActiveUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		log.Info("login rejected", "email", MaskEmail(email))
		return domain.Session{}, ErrInvalidCredentials
	}

	// The role resolves through the settings lookup table, so an account
	// whose role row was removed or deactivated cannot log in.
	roleName, err := s.Store.Settings().RoleName(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login rejected, role row missing", "user_id", user.ID, "role_id", user.RoleID)
			return domain.Session{}, ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	role := domain.RoleFromName(roleName)
	if role == domain.RoleUnknown {
		log.Warn("login rejected for unknown role", "user_id", user.ID, "role", roleName)
		return domain.Session{}, ErrInvalidCredentials
	}

	now := s.now()
	sess := domain.Session{
		ID:         cryptox.MustGenerateToken(cryptox.TokenSize256),
		User:       user,
		Role:       role,
		CreatedAt:  now,
		LastAccess: now,
	}
	if err := s.State.Sessions().Create(ctx, sess); err != nil {
		return domain.Session{}, err
	}

	log.Info("login succeeded", "user_id", user.ID, "role", role.Name())
	return sess, nil
}

// ValidateSession resolves a session id, enforcing the absolute expiry
// deadline. The second return is false for unknown or expired ids.
func (s *AuthService) ValidateSession(ctx context.Context, sessionID string) (domain.Session, bool, error) {
	if sessionID == "" {
		return domain.Session{}, false, nil
	}
	return s.State.Sessions().Get(ctx, sessionID, s.now())
}

// Logout destroys the session unconditionally. Unknown ids are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.State.Sessions().Delete(ctx, sessionID)
}
