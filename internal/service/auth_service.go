package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chorepoint/chorepoint/internal/auth"
	"github.com/chorepoint/chorepoint/internal/storage"
)

var (
	// ErrNotCaregiver signals a PIN operation on a child account. PINs
	// exist only for the caregiver role.
	ErrNotCaregiver = errors.New("user is not a caregiver")

	// ErrPinMismatch signals a failed PIN verification.
	ErrPinMismatch = errors.New("pin does not match")

	// ErrNoPinSet signals a verification attempt before any PIN was set.
	ErrNoPinSet = errors.New("no pin set for user")
)

// AuthService implements caregiver PIN flows: setting/changing the PIN and
// exchanging a correct PIN for a session token.
type AuthService struct {
	store      storage.Store
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{store: store, jwtManager: jwtManager, logger: logger}
}

// SetPIN validates, hashes, and stores a new PIN for a caregiver,
// replacing any previous one wholesale.
func (s *AuthService) SetPIN(ctx context.Context, userID, candidate string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsCaregiver() {
		return ErrNotCaregiver
	}

	pin, err := auth.NewPIN(candidate)
	if err != nil {
		return err
	}

	updated := user.WithPinHash(pin.Hash())
	if err := s.store.UpdateUser(ctx, &updated); err != nil {
		return fmt.Errorf("store pin: %w", err)
	}

	s.logger.Info("caregiver pin set", "user_id", userID)
	return nil
}

// VerifyPIN checks the candidate against the caregiver's stored PIN and
// returns a session token on success.
func (s *AuthService) VerifyPIN(ctx context.Context, userID, candidate string) (string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IsCaregiver() {
		return "", ErrNotCaregiver
	}
	if user.PinHash == "" {
		return "", ErrNoPinSet
	}

	if !auth.PINFromHash(user.PinHash).Verify(candidate) {
		s.logger.Warn("pin verification failed", "user_id", userID)
		return "", ErrPinMismatch
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	s.logger.Info("caregiver authenticated", "user_id", userID)
	return token, nil
}
