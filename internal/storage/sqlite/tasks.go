package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chorepoint/chorepoint/internal/models"
	"github.com/chorepoint/chorepoint/internal/storage"
)

// CreateTask inserts a new task, assigning its ID and creation time.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.CreatedAt == 0 {
		task.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, category, token_reward, assigned_to, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Category, task.TokenReward, task.AssignedTo,
		task.Completed, task.CreatedAt, task.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, category, token_reward, assigned_to, completed, created_at, completed_at
		FROM tasks WHERE id = ?`, id,
	).Scan(&task.ID, &task.Title, &task.Category, &task.TokenReward,
		&task.AssignedTo, &task.Completed, &task.CreatedAt, &task.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// UpdateTask updates an existing task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *models.Task) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, category = ?, token_reward = ?, assigned_to = ?, completed = ?, completed_at = ?
		WHERE id = ?`,
		task.Title, task.Category, task.TokenReward, task.AssignedTo,
		task.Completed, task.CompletedAt, task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", task.ID, storage.ErrNotFound)
	}
	return nil
}

// ListTasksByUser returns all tasks assigned to the user, newest first.
func (s *SQLiteStore) ListTasksByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return s.queryTasks(ctx, `
		SELECT id, title, category, token_reward, assigned_to, completed, created_at, completed_at
		FROM tasks WHERE assigned_to = ? ORDER BY created_at DESC`, userID)
}

// ListIncompleteTasks returns the user's currently-incomplete tasks.
func (s *SQLiteStore) ListIncompleteTasks(ctx context.Context, userID string) ([]models.Task, error) {
	return s.queryTasks(ctx, `
		SELECT id, title, category, token_reward, assigned_to, completed, created_at, completed_at
		FROM tasks WHERE assigned_to = ? AND completed = 0 ORDER BY created_at DESC`, userID)
}

// CountCompletedTasks returns how many of the user's tasks are completed.
func (s *SQLiteStore) CountCompletedTasks(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE assigned_to = ? AND completed = 1",
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}

// CountTokensEarned returns the total tokens earned from completed tasks.
func (s *SQLiteStore) CountTokensEarned(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(token_reward), 0) FROM tasks WHERE assigned_to = ? AND completed = 1",
		userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens earned: %w", err)
	}
	return total, nil
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.TokenReward,
			&t.AssignedTo, &t.Completed, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}
