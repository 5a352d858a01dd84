package engine

import (
	"testing"

	"github.com/niksuyko/habits-app/internal/models"
)

// Scenario B: intervalDays=3, nextDue=2024-01-01, queried on 2024-01-10:
// 9 days passed, 3 intervals added, nextDue=2024-01-10, lastDue=2024-01-07.
func TestAdvanceOverdueSkipsMissedOccurrences(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:         "Water plants",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 3,
		StartDate:    "2024-01-01",
	})

	if err := e.AdvanceOverdue("2024-01-10"); err != nil {
		t.Fatalf("AdvanceOverdue failed: %v", err)
	}

	state, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if state.NextDue != "2024-01-10" {
		t.Errorf("nextDue = %s, want 2024-01-10", state.NextDue)
	}
	if state.LastDue != "2024-01-07" {
		t.Errorf("lastDue = %s, want 2024-01-07", state.LastDue)
	}

	// The habit lands due on the reference date
	ids := dueIDs(t, e, "2024-01-10")
	if _, ok := ids[habit.ID]; !ok {
		t.Error("habit should be due on 2024-01-10 after the advance")
	}
}

// Overdue by a non-multiple of the interval: nextDue rounds up past the
// reference date.
func TestAdvanceOverdueRoundsUpToNextOccurrence(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:         "Change filter",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 7,
		StartDate:    "2024-01-01",
	})

	// 9 days passed, ceil(9/7)=2 intervals: nextDue=2024-01-15, lastDue=2024-01-08
	if err := e.AdvanceOverdue("2024-01-10"); err != nil {
		t.Fatalf("AdvanceOverdue failed: %v", err)
	}

	state, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if state.NextDue != "2024-01-15" {
		t.Errorf("nextDue = %s, want 2024-01-15", state.NextDue)
	}
	if state.LastDue != "2024-01-08" {
		t.Errorf("lastDue = %s, want 2024-01-08", state.LastDue)
	}
}

// Idempotence property: a second advance with the same reference date
// changes nothing.
func TestAdvanceOverdueIdempotent(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:         "Water plants",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 3,
		StartDate:    "2024-01-01",
	})

	if err := e.AdvanceOverdue("2024-01-10"); err != nil {
		t.Fatalf("AdvanceOverdue (1st) failed: %v", err)
	}
	first, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}

	if err := e.AdvanceOverdue("2024-01-10"); err != nil {
		t.Fatalf("AdvanceOverdue (2nd) failed: %v", err)
	}
	second, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}

	if first != second {
		t.Errorf("second advance changed state: %+v -> %+v", first, second)
	}
}

func TestAdvanceOverdueIgnoresCarryoverHabits(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:               "Deep clean",
		Schedule:           models.ScheduleInterval,
		IntervalDays:       7,
		StartDate:          "2024-01-01",
		RescheduleIfMissed: true,
	})

	if err := e.AdvanceOverdue("2024-06-01"); err != nil {
		t.Fatalf("AdvanceOverdue failed: %v", err)
	}

	state, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if state.NextDue != "2024-01-01" || state.LastDue != "" {
		t.Errorf("carryover habit state must not change, got %+v", state)
	}
}

func TestAdvanceOverdueCrossesMonthBoundary(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:         "Pay rent check",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 10,
		StartDate:    "2024-01-25",
	})

	// 20 days passed, 2 intervals: nextDue=2024-02-14, lastDue=2024-02-04
	if err := e.AdvanceOverdue("2024-02-14"); err != nil {
		t.Fatalf("AdvanceOverdue failed: %v", err)
	}

	state, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if state.NextDue != "2024-02-14" {
		t.Errorf("nextDue = %s, want 2024-02-14", state.NextDue)
	}
	if state.LastDue != "2024-02-04" {
		t.Errorf("lastDue = %s, want 2024-02-04", state.LastDue)
	}
}

func TestAdvanceOverdueLeavesFutureHabitsAlone(t *testing.T) {
	e, store := newTestEngine(t)

	habit := mustCreate(t, e, HabitSpec{
		Name:         "Water plants",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 3,
		StartDate:    "2024-05-01",
	})

	if err := e.AdvanceOverdue("2024-01-10"); err != nil {
		t.Fatalf("AdvanceOverdue failed: %v", err)
	}

	state, err := store.GetIntervalState(habit.ID)
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if state.NextDue != "2024-05-01" || state.LastDue != "" {
		t.Errorf("future habit state must not change, got %+v", state)
	}
}
