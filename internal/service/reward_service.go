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

// ErrRewardInactive signals a redemption attempt on a retired reward.
var ErrRewardInactive = errors.New("reward is not active")

// RedemptionResult describes a successful redemption.
type RedemptionResult struct {
	Redemption models.Redemption `json:"redemption"`
	NewBalance int               `json:"new_balance"`
}

// RewardService implements the reward catalog and token spending.
type RewardService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRewardService creates a RewardService with the given storage backend.
func NewRewardService(store storage.Store, logger *slog.Logger) *RewardService {
	return &RewardService{store: store, logger: logger}
}

// Create adds a reward to the catalog.
func (s *RewardService) Create(ctx context.Context, title, description string, tokenCost int) (*models.Reward, error) {
	if tokenCost < 0 {
		return nil, tokens.ErrInvalidAmount
	}

	reward := models.Reward{
		Title:       title,
		Description: description,
		TokenCost:   tokenCost,
		Active:      true,
	}
	if err := s.store.CreateReward(ctx, &reward); err != nil {
		return nil, err
	}
	s.logger.Info("reward created", "reward_id", reward.ID, "cost", reward.TokenCost)
	return &reward, nil
}

// List returns catalog entries, active ones only when activeOnly is set.
func (s *RewardService) List(ctx context.Context, activeOnly bool) ([]models.Reward, error) {
	return s.store.ListRewards(ctx, activeOnly)
}

// SetActive activates or retires a catalog entry.
func (s *RewardService) SetActive(ctx context.Context, rewardID string, active bool) (*models.Reward, error) {
	reward, err := s.store.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	reward.Active = active
	if err := s.store.UpdateReward(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// Redeem spends the reward's token cost from the user's balance and
// records the redemption. Fails with tokens.ErrInsufficientBalance when
// the user cannot afford it; redemptions never use the admin path.
func (s *RewardService) Redeem(ctx context.Context, userID, rewardID string) (*RedemptionResult, error) {
	reward, err := s.store.GetReward(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !reward.Active {
		return nil, ErrRewardInactive
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance, err := tokens.NewAdmin(user.TokenBalance).Subtract(reward.TokenCost)
	if err != nil {
		return nil, fmt.Errorf("redeem %q: %w", reward.Title, err)
	}

	spent := user.WithBalance(balance.Value())
	if err := s.store.UpdateUser(ctx, &spent); err != nil {
		return nil, fmt.Errorf("spend tokens: %w", err)
	}

	redemption := models.Redemption{
		RewardID:    reward.ID,
		UserID:      userID,
		TokensSpent: reward.TokenCost,
	}
	if err := s.store.CreateRedemption(ctx, &redemption); err != nil {
		return nil, fmt.Errorf("record redemption: %w", err)
	}

	metrics.RewardRedemptions.Inc()
	metrics.TokensSpent.Add(float64(reward.TokenCost))
	s.logger.Info("reward redeemed",
		"user_id", userID, "reward_id", reward.ID,
		"tokens_spent", reward.TokenCost, "balance", spent.TokenBalance)

	return &RedemptionResult{Redemption: redemption, NewBalance: spent.TokenBalance}, nil
}

// History returns the user's redemption history.
func (s *RewardService) History(ctx context.Context, userID string) ([]models.Redemption, error) {
	return s.store.ListRedemptionsByUser(ctx, userID)
}
