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

// CreateReward inserts a new reward catalog entry.
func (s *SQLiteStore) CreateReward(ctx context.Context, reward *models.Reward) error {
	if reward.ID == "" {
		reward.ID = uuid.New().String()
	}
	if reward.CreatedAt == 0 {
		reward.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rewards (id, title, description, token_cost, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		reward.ID, reward.Title, reward.Description, reward.TokenCost,
		reward.Active, reward.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reward: %w", err)
	}
	return nil
}

// GetReward retrieves a reward by ID.
func (s *SQLiteStore) GetReward(ctx context.Context, id string) (*models.Reward, error) {
	reward := &models.Reward{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, token_cost, active, created_at
		FROM rewards WHERE id = ?`, id,
	).Scan(&reward.ID, &reward.Title, &reward.Description,
		&reward.TokenCost, &reward.Active, &reward.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reward %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return reward, nil
}

// UpdateReward updates an existing reward catalog entry.
func (s *SQLiteStore) UpdateReward(ctx context.Context, reward *models.Reward) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE rewards SET title = ?, description = ?, token_cost = ?, active = ?
		WHERE id = ?`,
		reward.Title, reward.Description, reward.TokenCost, reward.Active, reward.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("reward %s: %w", reward.ID, storage.ErrNotFound)
	}
	return nil
}

// ListRewards returns catalog entries, restricted to active ones when
// activeOnly is set.
func (s *SQLiteStore) ListRewards(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	query := `
		SELECT id, title, description, token_cost, active, created_at
		FROM rewards ORDER BY created_at`
	if activeOnly {
		query = `
		SELECT id, title, description, token_cost, active, created_at
		FROM rewards WHERE active = 1 ORDER BY created_at`
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	var rewards []models.Reward
	for rows.Next() {
		var r models.Reward
		if err := rows.Scan(&r.ID, &r.Title, &r.Description,
			&r.TokenCost, &r.Active, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rewards: %w", err)
	}
	return rewards, nil
}

// CreateRedemption records a redeemed reward.
func (s *SQLiteStore) CreateRedemption(ctx context.Context, redemption *models.Redemption) error {
	if redemption.ID == "" {
		redemption.ID = uuid.New().String()
	}
	if redemption.RedeemedAt == 0 {
		redemption.RedeemedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO redemptions (id, reward_id, user_id, tokens_spent, redeemed_at)
		VALUES (?, ?, ?, ?, ?)`,
		redemption.ID, redemption.RewardID, redemption.UserID,
		redemption.TokensSpent, redemption.RedeemedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create redemption: %w", err)
	}
	return nil
}

// ListRedemptionsByUser returns the user's redemption history, newest first.
func (s *SQLiteStore) ListRedemptionsByUser(ctx context.Context, userID string) ([]models.Redemption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reward_id, user_id, tokens_spent, redeemed_at
		FROM redemptions WHERE user_id = ? ORDER BY redeemed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []models.Redemption
	for rows.Next() {
		var r models.Redemption
		if err := rows.Scan(&r.ID, &r.RewardID, &r.UserID,
			&r.TokensSpent, &r.RedeemedAt); err != nil {
			return nil, fmt.Errorf("failed to scan redemption: %w", err)
		}
		redemptions = append(redemptions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate redemptions: %w", err)
	}
	return redemptions, nil
}
