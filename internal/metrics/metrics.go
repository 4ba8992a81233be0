// Package metrics defines the Prometheus counters for the token economy.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksCompleted counts task completions (undos do not decrement).
	TasksCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorepoint_tasks_completed_total",
		Help: "Total number of tasks marked completed.",
	})

	// TokensGranted counts tokens handed out for completed tasks.
	TokensGranted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorepoint_tokens_granted_total",
		Help: "Total tokens granted as task rewards.",
	})

	// TokensSpent counts tokens spent on reward redemptions.
	TokensSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorepoint_tokens_spent_total",
		Help: "Total tokens spent on reward redemptions.",
	})

	// AchievementsUnlocked counts unlocks, labeled by achievement type.
	AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chorepoint_achievements_unlocked_total",
		Help: "Total achievements unlocked, by type.",
	}, []string{"type"})

	// RewardRedemptions counts redeemed rewards.
	RewardRedemptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chorepoint_reward_redemptions_total",
		Help: "Total reward redemptions.",
	})
)
