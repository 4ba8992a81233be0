package models

import "time"

// AchievementType names a milestone a user can unlock.
type AchievementType string

const (
	AchievementFirstSteps     AchievementType = "FIRST_STEPS"
	AchievementCenturyClub    AchievementType = "CENTURY_CLUB"
	AchievementTokenCollector AchievementType = "TOKEN_COLLECTOR"
	AchievementTaskMaster     AchievementType = "TASK_MASTER"
	AchievementThreeDayStreak AchievementType = "THREE_DAY_STREAK"

	// Reserved for upcoming milestones. Rows exist per user but no unlock
	// rule is registered yet, so the tracking engine leaves them alone.
	AchievementPerfectWeek AchievementType = "PERFECT_WEEK"
	AchievementEarlyBird   AchievementType = "EARLY_BIRD"
	AchievementBigSpender  AchievementType = "BIG_SPENDER"
)

// AchievementTypes lists every known type, in a stable order.
func AchievementTypes() []AchievementType {
	return []AchievementType{
		AchievementFirstSteps,
		AchievementCenturyClub,
		AchievementTokenCollector,
		AchievementTaskMaster,
		AchievementThreeDayStreak,
		AchievementPerfectWeek,
		AchievementEarlyBird,
		AchievementBigSpender,
	}
}

// Achievement tracks one user's progress toward one milestone type.
//
// Once Unlocked is true the record is terminal: the tracking engine never
// re-evaluates it and progress never decreases.
type Achievement struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// UserID is the user this record belongs to. One record exists per
	// (user, type) pair.
	UserID string `json:"user_id"`

	// Type is the milestone being tracked.
	Type AchievementType `json:"type"`

	// Progress is the current counter toward the threshold, so the UI can
	// show e.g. "7/10". Pinned to the type's unlock value on unlock.
	Progress int `json:"progress"`

	// Unlocked is the one-way unlock flag.
	Unlocked bool `json:"unlocked"`

	// UnlockedAt is the Unix timestamp of the unlock, zero while locked.
	UnlockedAt int64 `json:"unlocked_at,omitempty"`

	// CreatedAt is the Unix timestamp when the record was initialized.
	CreatedAt int64 `json:"created_at"`
}

// WithProgress returns a copy with the given progress counter. The unlock
// flag is untouched; unlock transitions are the tracking engine's call,
// not the entity's.
func (a Achievement) WithProgress(progress int) Achievement {
	if progress < 0 {
		progress = 0
	}
	a.Progress = progress
	return a
}

// Unlock returns an unlocked copy with progress pinned to the given value.
func (a Achievement) Unlock(progress int) Achievement {
	a.Progress = progress
	a.Unlocked = true
	a.UnlockedAt = time.Now().Unix()
	return a
}
