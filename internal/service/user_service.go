package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chorepoint/chorepoint/internal/models"
	"github.com/chorepoint/chorepoint/internal/storage"
	"github.com/chorepoint/chorepoint/internal/tokens"
)

// ErrInvalidRole signals an unknown user role at creation time.
var ErrInvalidRole = errors.New("role must be CHILD or CAREGIVER")

// UserService implements user management and caregiver balance
// corrections.
type UserService struct {
	store        storage.Store
	achievements *AchievementService
	logger       *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(store storage.Store, achievements *AchievementService, logger *slog.Logger) *UserService {
	return &UserService{store: store, achievements: achievements, logger: logger}
}

// Create persists a new user with a zero balance and seeds their
// achievement records so the tracking engine can evaluate them.
func (s *UserService) Create(ctx context.Context, name string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user := models.User{
		Name:         name,
		Role:         role,
		TokenBalance: tokens.Zero().Value(),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	if err := s.achievements.InitializeForUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("initialize achievements: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "role", user.Role)
	return &user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// AdjustBalance applies a caregiver correction of delta tokens (positive
// or negative) to the user's balance through the admin path, which may
// leave the balance negative.
func (s *UserService) AdjustBalance(ctx context.Context, userID string, delta int) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := tokens.NewAdmin(user.TokenBalance).AdminSubtract(-delta)
	adjusted := user.WithBalance(balance.Value())
	if err := s.store.UpdateUser(ctx, &adjusted); err != nil {
		return nil, fmt.Errorf("adjust balance: %w", err)
	}

	s.logger.Info("balance adjusted by caregiver",
		"user_id", userID, "delta", delta, "balance", adjusted.TokenBalance)
	return &adjusted, nil
}
