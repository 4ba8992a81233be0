package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chorepoint/chorepoint/internal/metrics"
	"github.com/chorepoint/chorepoint/internal/models"
	"github.com/chorepoint/chorepoint/internal/storage"
)

// metricSource names the history metric an unlock rule reads.
type metricSource int

const (
	metricCompletedTasks metricSource = iota
	metricTokensEarned
	metricIncompleteTasks
)

// rule is one achievement type's unlock condition: which metric to read,
// when the metric unlocks, and the progress value pinned on unlock. While
// locked, progress tracks the raw metric so the UI can show "7/10".
type rule struct {
	source         metricSource
	unlocked       func(metric int) bool
	unlockProgress int
}

// rules is the closed unlock table. Adding a type is one entry here plus,
// if needed, a new metric source. Types without an entry (the reserved
// ones) are skipped by the engine.
var rules = map[models.AchievementType]rule{
	models.AchievementFirstSteps: {
		source:         metricCompletedTasks,
		unlocked:       func(n int) bool { return n >= 1 },
		unlockProgress: 1,
	},
	models.AchievementCenturyClub: {
		source:         metricCompletedTasks,
		unlocked:       func(n int) bool { return n >= 10 },
		unlockProgress: 10,
	},
	models.AchievementTokenCollector: {
		source:         metricTokensEarned,
		unlocked:       func(n int) bool { return n >= 50 },
		unlockProgress: 50,
	},
	models.AchievementTaskMaster: {
		source:         metricIncompleteTasks,
		unlocked:       func(n int) bool { return n == 0 },
		unlockProgress: 1,
	},
	// Simplified proxy: counts completed tasks, not real calendar days.
	// Kept for compatibility with the existing progression data.
	models.AchievementThreeDayStreak: {
		source:         metricCompletedTasks,
		unlocked:       func(n int) bool { return n >= 6 },
		unlockProgress: 3,
	},
}

// AchievementService is the achievement tracking engine. Given a user it
// evaluates every still-locked achievement type against the user's task and
// token history, persists progress, and reports fresh unlocks.
type AchievementService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAchievementService creates an AchievementService with the given
// storage backend.
func NewAchievementService(store storage.Store, logger *slog.Logger) *AchievementService {
	return &AchievementService{store: store, logger: logger}
}

// metricReader fetches history metrics lazily and memoizes them, so one
// evaluation issues at most one query per metric source regardless of how
// many types share it, and none at all for metrics no pending type needs.
type metricReader struct {
	store  storage.Store
	userID string

	completed        int
	completedLoaded  bool
	earned           int
	earnedLoaded     bool
	incomplete       int
	incompleteLoaded bool
}

func (r *metricReader) read(ctx context.Context, source metricSource) (int, error) {
	switch source {
	case metricCompletedTasks:
		if !r.completedLoaded {
			n, err := r.store.CountCompletedTasks(ctx, r.userID)
			if err != nil {
				return 0, err
			}
			r.completed = n
			r.completedLoaded = true
		}
		return r.completed, nil
	case metricTokensEarned:
		if !r.earnedLoaded {
			n, err := r.store.CountTokensEarned(ctx, r.userID)
			if err != nil {
				return 0, err
			}
			r.earned = n
			r.earnedLoaded = true
		}
		return r.earned, nil
	case metricIncompleteTasks:
		if !r.incompleteLoaded {
			tasks, err := r.store.ListIncompleteTasks(ctx, r.userID)
			if err != nil {
				return 0, err
			}
			r.incomplete = len(tasks)
			r.incompleteLoaded = true
		}
		return r.incomplete, nil
	default:
		return 0, fmt.Errorf("unknown metric source %d", source)
	}
}

// CheckAchievements evaluates every achievement type with an unlock rule
// for the user and returns the achievements that unlocked during this call
// (never previously-unlocked ones).
//
// Records missing for a type are an explicit no-op: they must be seeded by
// InitializeForUser first. Each type's update is an independent write; a
// failure mid-way surfaces to the caller and earlier writes stay committed.
func (s *AchievementService) CheckAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	reader := &metricReader{store: s.store, userID: userID}

	var unlocked []models.Achievement
	for _, typ := range models.AchievementTypes() {
		r, ok := rules[typ]
		if !ok {
			continue // reserved type, no rule yet
		}

		record, err := s.store.GetAchievement(ctx, userID, typ)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Achievements were never initialized for this user.
				// Observable no-op rather than a silent false negative.
				s.logger.Debug("achievement record missing, skipping",
					"user_id", userID, "type", typ)
				continue
			}
			return unlocked, fmt.Errorf("fetch achievement %s: %w", typ, err)
		}
		if record.Unlocked {
			continue // terminal, never re-evaluated
		}

		metric, err := reader.read(ctx, r.source)
		if err != nil {
			return unlocked, fmt.Errorf("read metric for %s: %w", typ, err)
		}

		if r.unlocked(metric) {
			updated := record.Unlock(r.unlockProgress)
			if err := s.store.UpdateAchievement(ctx, &updated); err != nil {
				return unlocked, fmt.Errorf("persist unlock %s: %w", typ, err)
			}
			metrics.AchievementsUnlocked.WithLabelValues(string(typ)).Inc()
			s.logger.Info("achievement unlocked",
				"user_id", userID, "type", typ, "progress", updated.Progress)
			unlocked = append(unlocked, updated)
			continue
		}

		// Progress is tracked even when not unlocking so the UI can
		// show partial completion.
		updated := record.WithProgress(metric)
		if err := s.store.UpdateAchievement(ctx, &updated); err != nil {
			return unlocked, fmt.Errorf("persist progress %s: %w", typ, err)
		}
	}

	return unlocked, nil
}

// AllAchievements returns every achievement record for the user.
func (s *AchievementService) AllAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.store.ListAchievements(ctx, userID)
}

// UnlockedAchievements returns the user's unlocked records.
func (s *AchievementService) UnlockedAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.store.ListUnlockedAchievements(ctx, userID)
}

// InitializeForUser seeds the user's achievement records. Must run before
// the first CheckAchievements call; the engine skips types without records.
func (s *AchievementService) InitializeForUser(ctx context.Context, userID string) error {
	return s.store.InitializeAchievements(ctx, userID)
}
