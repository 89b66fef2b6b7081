package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/session"
)

var ErrUnauthorized = errors.New("unauthorized")

// Tokens expire exactly sessionTTL after issue; validation never
// renews them.
const sessionTTL = 24 * time.Hour

const basicPrefix = "Basic "

type AuthService struct {
	users    user.Repository
	sessions ports.SessionStore
}

func NewAuthService(
	users user.Repository,
	sessions ports.SessionStore,
) ports.AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

func (as *AuthService) Authenticate(ctx context.Context, credentials string) (string, error) {
	email, password, err := decodeBasic(credentials)
	if err != nil {
		return "", ErrUnauthorized
	}

	u, err := as.users.FetchUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("fetch user by email: %w", err)
	}
	if u == nil || u.PasswordHash == nil {
		return "", ErrUnauthorized
	}
	if err = bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err = as.sessions.Set(ctx, token, u.UUID.String(), sessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (as *AuthService) Validate(ctx context.Context, token string) (user.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrUnauthorized
	}

	v, err := as.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("fetch session: %w", err)
	}

	owner, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value %q: %w", v, err)
	}

	return owner, nil
}

// Revoke is not idempotent: revoking an already-dead token fails the
// same way any other bad token does.
func (as *AuthService) Revoke(ctx context.Context, token string) error {
	if _, err := as.Validate(ctx, token); err != nil {
		return err
	}
	if err := as.sessions.Del(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func decodeBasic(header string) (email, password string, err error) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", "", ErrUnauthorized
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, basicPrefix))
	if err != nil {
		return "", "", ErrUnauthorized
	}

	email, password, ok := strings.Cut(string(raw), ":")
	if !ok || email == "" || password == "" {
		return "", "", ErrUnauthorized
	}

	return email, password, nil
}
