package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"stockseer/internal/auth"
	"stockseer/internal/domain"
	"stockseer/internal/store"

	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrInvalidCredentials covers both unknown email and password
	// mismatch so the two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrValidation marks malformed registration input.
	ErrValidation = errors.New("validation failed")
)

// AuthService registers and authenticates users and issues bearer tokens.
type AuthService struct {
	tracer   trace.Tracer
	store    store.Store
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(tracer trace.Tracer, st store.Store, secret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = auth.DefaultTokenTTL
	}
	return &AuthService{tracer: tracer, store: st, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account and returns the new user with a signed token.
// Fails with store.ErrDuplicateEmail when the email is taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	ctx, span := s.tracer.Start(ctx, "auth-service.register")
	defer span.End()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < domain.MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrValidation, domain.MinPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, name, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	ctx, span := s.tracer.Start(ctx, "auth-service.login")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken checks a bearer token's signature and expiry. Stateless:
// the store is not consulted.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	return auth.ParseToken(token, s.secret)
}
