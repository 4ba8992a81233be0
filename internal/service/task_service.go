package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chorepoint/chorepoint/internal/metrics"
	"github.com/chorepoint/chorepoint/internal/models"
	"github.com/chorepoint/chorepoint/internal/storage"
	"github.com/chorepoint/chorepoint/internal/tokens"
)

var (
	// ErrTaskAlreadyCompleted signals a completion attempt on a task that
	// is already completed. The grant/achievement side effects fire at
	// most once per completion, so the transition is gated.
	ErrTaskAlreadyCompleted = errors.New("task is already completed")

	// ErrTaskNotCompleted signals an undo attempt on an incomplete task.
	ErrTaskNotCompleted = errors.New("task is not completed")

	// ErrInvalidReward signals a negative token reward override.
	ErrInvalidReward = errors.New("token reward must be non-negative")
)

// CompletionResult describes everything that happened when a task was
// completed: the new task state, tokens granted, the assignee's updated
// balance, and any achievements unlocked by this completion.
type CompletionResult struct {
	Task          models.Task          `json:"task"`
	TokensGranted int                  `json:"tokens_granted"`
	NewBalance    int                  `json:"new_balance"`
	Unlocked      []models.Achievement `json:"unlocked_achievements"`
}

// TaskService implements the task lifecycle: creation, completion with
// token grants and achievement checks, undo, and reassignment.
type TaskService struct {
	store        storage.Store
	achievements *AchievementService
	logger       *slog.Logger
}

// NewTaskService creates a TaskService with the given storage backend and
// achievement engine.
func NewTaskService(store storage.Store, achievements *AchievementService, logger *slog.Logger) *TaskService {
	return &TaskService{store: store, achievements: achievements, logger: logger}
}

// Create builds and persists a new task. rewardOverride, when >= 0,
// replaces the category's default token reward.
func (s *TaskService) Create(ctx context.Context, title string, category models.Category, assignedTo string, rewardOverride *int) (*models.Task, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown task category: %q", category)
	}
	if _, err := s.store.GetUser(ctx, assignedTo); err != nil {
		return nil, fmt.Errorf("assignee: %w", err)
	}

	task := models.NewTask(title, category, assignedTo)
	if rewardOverride != nil {
		if *rewardOverride < 0 {
			return nil, ErrInvalidReward
		}
		task.TokenReward = *rewardOverride
	}

	if err := s.store.CreateTask(ctx, &task); err != nil {
		return nil, err
	}
	s.logger.Info("task created",
		"task_id", task.ID, "category", task.Category,
		"reward", task.TokenReward, "assigned_to", task.AssignedTo)
	return &task, nil
}

// Get retrieves a task by ID.
func (s *TaskService) Get(ctx context.Context, id string) (*models.Task, error) {
	return s.store.GetTask(ctx, id)
}

// ListByUser returns all tasks assigned to the user.
func (s *TaskService) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return s.store.ListTasksByUser(ctx, userID)
}

// Complete transitions the task to completed, grants its token reward to
// the assignee, and runs the achievement engine. Fails with
// ErrTaskAlreadyCompleted if the task was already done.
func (s *TaskService) Complete(ctx context.Context, taskID string) (*CompletionResult, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.CanBeCompleted() {
		return nil, ErrTaskAlreadyCompleted
	}

	user, err := s.store.GetUser(ctx, task.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("assignee: %w", err)
	}

	completed := task.MarkCompleted()
	if err := s.store.UpdateTask(ctx, &completed); err != nil {
		return nil, err
	}

	// Balances from persisted users may be negative after caregiver
	// corrections, so rehydrate through the admin factory.
	balance, err := tokens.NewAdmin(user.TokenBalance).Add(completed.TokenReward)
	if err != nil {
		return nil, fmt.Errorf("grant reward: %w", err)
	}
	granted := user.WithBalance(balance.Value())
	if err := s.store.UpdateUser(ctx, &granted); err != nil {
		return nil, fmt.Errorf("grant reward: %w", err)
	}

	metrics.TasksCompleted.Inc()
	metrics.TokensGranted.Add(float64(completed.TokenReward))
	s.logger.Info("task completed",
		"task_id", completed.ID, "user_id", granted.ID,
		"tokens_granted", completed.TokenReward, "balance", granted.TokenBalance)

	unlocked, err := s.achievements.CheckAchievements(ctx, granted.ID)
	if err != nil {
		// The completion and grant are committed; surface the failure.
		return nil, fmt.Errorf("check achievements: %w", err)
	}

	return &CompletionResult{
		Task:          completed,
		TokensGranted: completed.TokenReward,
		NewBalance:    granted.TokenBalance,
		Unlocked:      unlocked,
	}, nil
}

// Undo reverts a completed task to incomplete and revokes the granted
// tokens. The revocation uses the admin path: if the child already spent
// the tokens the balance goes negative rather than the undo failing.
func (s *TaskService) Undo(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.Completed {
		return nil, ErrTaskNotCompleted
	}

	user, err := s.store.GetUser(ctx, task.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("assignee: %w", err)
	}

	reverted := task.MarkIncomplete()
	if err := s.store.UpdateTask(ctx, &reverted); err != nil {
		return nil, err
	}

	balance := tokens.NewAdmin(user.TokenBalance).AdminSubtract(task.TokenReward)
	revoked := user.WithBalance(balance.Value())
	if err := s.store.UpdateUser(ctx, &revoked); err != nil {
		return nil, fmt.Errorf("revoke reward: %w", err)
	}

	s.logger.Info("task completion undone",
		"task_id", reverted.ID, "user_id", revoked.ID,
		"tokens_revoked", task.TokenReward, "balance", revoked.TokenBalance)
	return &reverted, nil
}

// Reassign moves the task to another user.
func (s *TaskService) Reassign(ctx context.Context, taskID, userID string) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("assignee: %w", err)
	}

	reassigned := task.Reassign(userID)
	if err := s.store.UpdateTask(ctx, &reassigned); err != nil {
		return nil, err
	}
	return &reassigned, nil
}
