package models

import (
	"fmt"
	"time"
)

// Category classifies a task and fixes its default token reward.
type Category string

const (
	CategoryPersonalCare Category = "PERSONAL_CARE"
	CategoryHousehold    Category = "HOUSEHOLD"
	CategoryHomework     Category = "HOMEWORK"
)

// DefaultTokenReward returns the fixed default reward for the category.
func (c Category) DefaultTokenReward() int {
	switch c {
	case CategoryPersonalCare:
		return 5
	case CategoryHousehold:
		return 10
	case CategoryHomework:
		return 15
	default:
		return 0
	}
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPersonalCare, CategoryHousehold, CategoryHomework:
		return true
	}
	return false
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown task category: %q", s)
	}
	return c, nil
}

// Task represents one assignable unit of work.
//
// A task has two states: incomplete (initial) and completed. Transitions are
// copy-on-write; callers gate MarkCompleted behind CanBeCompleted so the
// one-way reward rules (token grant, achievement check) fire at most once.
type Task struct {
	// ID is the unique identifier for the task (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name of the task.
	Title string `json:"title"`

	// Category determines the default token reward.
	Category Category `json:"category"`

	// TokenReward is the number of tokens granted on completion. Defaults
	// to the category's default but may be overridden at creation.
	// Always >= 0.
	TokenReward int `json:"token_reward"`

	// AssignedTo is the ID of the user responsible for the task.
	AssignedTo string `json:"assigned_to"`

	// Completed reports whether the task has been done.
	Completed bool `json:"completed"`

	// CreatedAt is the Unix timestamp when the task was created.
	CreatedAt int64 `json:"created_at"`

	// CompletedAt is the Unix timestamp of the most recent completion,
	// zero while incomplete.
	CompletedAt int64 `json:"completed_at,omitempty"`
}

// NewTask builds an incomplete task with the category's default reward.
// The ID is assigned by the storage layer on insert.
func NewTask(title string, category Category, assignedTo string) Task {
	return Task{
		Title:       title,
		Category:    category,
		TokenReward: category.DefaultTokenReward(),
		AssignedTo:  assignedTo,
		CreatedAt:   time.Now().Unix(),
	}
}

// CanBeCompleted reports whether completing the task is a valid transition.
func (t Task) CanBeCompleted() bool {
	return !t.Completed
}

// MarkCompleted returns a completed copy of the task. Callers must check
// CanBeCompleted first; the copy itself is unconditional.
func (t Task) MarkCompleted() Task {
	t.Completed = true
	t.CompletedAt = time.Now().Unix()
	return t
}

// MarkIncomplete returns an incomplete copy of the task (undo path).
func (t Task) MarkIncomplete() Task {
	t.Completed = false
	t.CompletedAt = 0
	return t
}

// Reassign returns a copy of the task assigned to another user.
func (t Task) Reassign(userID string) Task {
	t.AssignedTo = userID
	return t
}
