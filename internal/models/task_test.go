package models

import "testing"

func TestCategoryDefaults(t *testing.T) {
	cases := []struct {
		category Category
		want     int
	}{
		{CategoryPersonalCare, 5},
		{CategoryHousehold, 10},
		{CategoryHomework, 15},
	}
	for _, tc := range cases {
		if got := tc.category.DefaultTokenReward(); got != tc.want {
			t.Errorf("%s default reward = %d, want %d", tc.category, got, tc.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("HOMEWORK")
	if err != nil {
		t.Fatalf("ParseCategory failed: %v", err)
	}
	if c != CategoryHomework {
		t.Errorf("expected HOMEWORK, got %s", c)
	}

	if _, err := ParseCategory("GARDENING"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask("Math homework", CategoryHomework, "user-1")

	if task.TokenReward != 15 {
		t.Errorf("expected default reward 15, got %d", task.TokenReward)
	}
	if task.Completed {
		t.Error("new task must start incomplete")
	}
	if !task.CanBeCompleted() {
		t.Error("new task must be completable")
	}
	if task.CreatedAt == 0 {
		t.Error("expected CreatedAt set")
	}
}

func TestTaskTransitionsAreCopies(t *testing.T) {
	original := NewTask("Dishes", CategoryHousehold, "user-1")

	completed := original.MarkCompleted()
	if !completed.Completed {
		t.Error("expected copy completed")
	}
	if completed.CompletedAt == 0 {
		t.Error("expected CompletedAt set on copy")
	}
	if completed.CanBeCompleted() {
		t.Error("completed task must not be completable")
	}
	if original.Completed {
		t.Error("original must stay incomplete")
	}

	reverted := completed.MarkIncomplete()
	if reverted.Completed || reverted.CompletedAt != 0 {
		t.Error("expected reverted copy incomplete with cleared CompletedAt")
	}
	if !completed.Completed {
		t.Error("completed copy must stay completed")
	}

	moved := original.Reassign("user-2")
	if moved.AssignedTo != "user-2" {
		t.Errorf("expected reassignment to user-2, got %s", moved.AssignedTo)
	}
	if original.AssignedTo != "user-1" {
		t.Error("original assignment must be untouched")
	}
}

func TestAchievementCopies(t *testing.T) {
	a := Achievement{UserID: "user-1", Type: AchievementCenturyClub, Progress: 4}

	updated := a.WithProgress(7)
	if updated.Progress != 7 || updated.Unlocked {
		t.Errorf("WithProgress: got progress=%d unlocked=%v", updated.Progress, updated.Unlocked)
	}
	if a.Progress != 4 {
		t.Error("receiver mutated by WithProgress")
	}

	// Defensive clamp: malformed input is a caller bug, not a domain
	// error.
	if clamped := a.WithProgress(-3); clamped.Progress != 0 {
		t.Errorf("expected negative progress clamped to 0, got %d", clamped.Progress)
	}

	unlocked := a.Unlock(10)
	if !unlocked.Unlocked || unlocked.Progress != 10 || unlocked.UnlockedAt == 0 {
		t.Errorf("Unlock: got progress=%d unlocked=%v at=%d",
			unlocked.Progress, unlocked.Unlocked, unlocked.UnlockedAt)
	}
	if a.Unlocked {
		t.Error("receiver mutated by Unlock")
	}
}
