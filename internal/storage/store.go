// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/chorepoint/chorepoint/internal/models"
)

// ErrNotFound signals that a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface the services depend on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users

	// CreateUser persists a new user. The user's ID and timestamps are
	// populated by the store.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateUser updates an existing user (balance, pin hash, name).
	UpdateUser(ctx context.Context, user *models.User) error
	// ListUsers returns all users ordered by creation time.
	ListUsers(ctx context.Context) ([]models.User, error)

	// Tasks

	// CreateTask persists a new task. The task's ID is populated by the
	// store.
	CreateTask(ctx context.Context, task *models.Task) error
	// GetTask retrieves a task by ID. Returns ErrNotFound if absent.
	GetTask(ctx context.Context, id string) (*models.Task, error)
	// UpdateTask updates an existing task.
	UpdateTask(ctx context.Context, task *models.Task) error
	// ListTasksByUser returns all tasks assigned to the user.
	ListTasksByUser(ctx context.Context, userID string) ([]models.Task, error)
	// ListIncompleteTasks returns the user's currently-incomplete tasks.
	ListIncompleteTasks(ctx context.Context, userID string) ([]models.Task, error)
	// CountCompletedTasks returns how many of the user's tasks are
	// completed.
	CountCompletedTasks(ctx context.Context, userID string) (int, error)
	// CountTokensEarned returns the total tokens the user has earned from
	// completed tasks.
	CountTokensEarned(ctx context.Context, userID string) (int, error)

	// Achievements

	// InitializeAchievements seeds one locked, zero-progress record per
	// achievement type for the user. Existing records are left untouched.
	InitializeAchievements(ctx context.Context, userID string) error
	// GetAchievement retrieves the record for (user, type).
	// Returns ErrNotFound if the user's records were never initialized.
	GetAchievement(ctx context.Context, userID string, typ models.AchievementType) (*models.Achievement, error)
	// UpdateAchievement updates an existing achievement record.
	UpdateAchievement(ctx context.Context, achievement *models.Achievement) error
	// ListAchievements returns all of the user's achievement records.
	ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	// ListUnlockedAchievements returns only the unlocked records.
	ListUnlockedAchievements(ctx context.Context, userID string) ([]models.Achievement, error)

	// Rewards

	// CreateReward persists a new reward catalog entry.
	CreateReward(ctx context.Context, reward *models.Reward) error
	// GetReward retrieves a reward by ID. Returns ErrNotFound if absent.
	GetReward(ctx context.Context, id string) (*models.Reward, error)
	// UpdateReward updates an existing reward catalog entry.
	UpdateReward(ctx context.Context, reward *models.Reward) error
	// ListRewards returns catalog entries, active ones only when
	// activeOnly is set.
	ListRewards(ctx context.Context, activeOnly bool) ([]models.Reward, error)
	// CreateRedemption records a redeemed reward.
	CreateRedemption(ctx context.Context, redemption *models.Redemption) error
	// ListRedemptionsByUser returns the user's redemption history.
	ListRedemptionsByUser(ctx context.Context, userID string) ([]models.Redemption, error)

	// Close releases any resources held by the store.
	Close() error
}
