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

// InitializeAchievements seeds one locked, zero-progress record per known
// achievement type for the user. Already-existing records are left as-is,
// so the call is safe to repeat.
func (s *SQLiteStore) InitializeAchievements(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, typ := range models.AchievementTypes() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO achievements (id, user_id, type, progress, unlocked, unlocked_at, created_at)
			VALUES (?, ?, ?, 0, 0, 0, ?)
			ON CONFLICT (user_id, type) DO NOTHING`,
			uuid.New().String(), userID, typ, now,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize achievement %s: %w", typ, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAchievement retrieves the record for (user, type).
func (s *SQLiteStore) GetAchievement(ctx context.Context, userID string, typ models.AchievementType) (*models.Achievement, error) {
	a := &models.Achievement{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, type, progress, unlocked, unlocked_at, created_at
		FROM achievements WHERE user_id = ? AND type = ?`, userID, typ,
	).Scan(&a.ID, &a.UserID, &a.Type, &a.Progress, &a.Unlocked, &a.UnlockedAt, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("achievement %s/%s: %w", userID, typ, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return a, nil
}

// UpdateAchievement updates an existing achievement record.
func (s *SQLiteStore) UpdateAchievement(ctx context.Context, achievement *models.Achievement) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE achievements SET progress = ?, unlocked = ?, unlocked_at = ?
		WHERE id = ?`,
		achievement.Progress, achievement.Unlocked, achievement.UnlockedAt, achievement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update achievement: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("achievement %s: %w", achievement.ID, storage.ErrNotFound)
	}
	return nil
}

// ListAchievements returns all of the user's achievement records.
func (s *SQLiteStore) ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.queryAchievements(ctx, `
		SELECT id, user_id, type, progress, unlocked, unlocked_at, created_at
		FROM achievements WHERE user_id = ? ORDER BY created_at`, userID)
}

// ListUnlockedAchievements returns only the user's unlocked records.
func (s *SQLiteStore) ListUnlockedAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.queryAchievements(ctx, `
		SELECT id, user_id, type, progress, unlocked, unlocked_at, created_at
		FROM achievements WHERE user_id = ? AND unlocked = 1 ORDER BY unlocked_at`, userID)
}

func (s *SQLiteStore) queryAchievements(ctx context.Context, query string, args ...any) ([]models.Achievement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var achievements []models.Achievement
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Progress,
			&a.Unlocked, &a.UnlockedAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate achievements: %w", err)
	}
	return achievements, nil
}
