package models

// Reward is a catalog entry children can spend tokens on.
type Reward struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TokenCost   int    `json:"token_cost"`
	Active      bool   `json:"active"`
	CreatedAt   int64  `json:"created_at"`
}

// Redemption records one reward being redeemed by one user.
type Redemption struct {
	ID          string `json:"id"`
	RewardID    string `json:"reward_id"`
	UserID      string `json:"user_id"`
	TokensSpent int    `json:"tokens_spent"`
	RedeemedAt  int64  `json:"redeemed_at"`
}
