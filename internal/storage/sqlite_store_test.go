package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksuyko/habits-app/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "habits.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testHabit(id, name string, created time.Time) models.Habit {
	return models.Habit{
		ID:        id,
		Name:      name,
		Schedule:  models.ScheduleDaily,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestHabitCRUD(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().UTC()
	habit := models.Habit{
		ID:           "h1",
		Name:         "Stretch",
		Schedule:     models.ScheduleInterval,
		IntervalDays: 3,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	got, err := store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Name != "Stretch" || got.Schedule != models.ScheduleInterval || got.IntervalDays != 3 {
		t.Errorf("GetHabit returned %+v", got)
	}

	habit.Name = "Stretch (morning)"
	habit.UpdatedAt = now.Add(time.Minute)
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	got, err = store.GetHabit("h1")
	if err != nil {
		t.Fatalf("GetHabit after update failed: %v", err)
	}
	if got.Name != "Stretch (morning)" {
		t.Errorf("expected updated name, got %q", got.Name)
	}
}

func TestGetHabitNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetHabit("missing")
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected ErrHabitNotFound, got %v", err)
	}

	err = store.UpdateHabit(testHabit("missing", "x", time.Now()))
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("UpdateHabit: expected ErrHabitNotFound, got %v", err)
	}

	err = store.DeleteHabit("missing")
	if !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("DeleteHabit: expected ErrHabitNotFound, got %v", err)
	}
}

func TestGetAllHabitsOrderedByCreation(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of creation order on purpose
	for _, h := range []models.Habit{
		testHabit("h2", "second", base.Add(time.Hour)),
		testHabit("h3", "third", base.Add(2*time.Hour)),
		testHabit("h1", "first", base),
	} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("AddHabit failed: %v", err)
		}
	}

	habits, err := store.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 3 {
		t.Fatalf("expected 3 habits, got %d", len(habits))
	}
	for i, want := range []string{"first", "second", "third"} {
		if habits[i].Name != want {
			t.Errorf("habit %d: expected %q, got %q", i, want, habits[i].Name)
		}
	}
}

func TestHabitDays(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Gym", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	days := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if err := store.SetHabitDays("h1", days); err != nil {
		t.Fatalf("SetHabitDays failed: %v", err)
	}

	got, err := store.GetHabitDays("h1")
	if err != nil {
		t.Fatalf("GetHabitDays failed: %v", err)
	}
	if len(got) != 3 || got[0] != time.Monday || got[1] != time.Wednesday || got[2] != time.Friday {
		t.Errorf("GetHabitDays = %v", got)
	}

	// Replacing the set drops old assignments
	if err := store.SetHabitDays("h1", []time.Weekday{time.Sunday}); err != nil {
		t.Fatalf("SetHabitDays (replace) failed: %v", err)
	}
	got, err = store.GetHabitDays("h1")
	if err != nil {
		t.Fatalf("GetHabitDays failed: %v", err)
	}
	if len(got) != 1 || got[0] != time.Sunday {
		t.Errorf("after replace, GetHabitDays = %v", got)
	}
}

func TestCompletionUniqueness(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Read", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	if err := store.AddCompletion("h1", "2024-03-05"); err != nil {
		t.Fatalf("AddCompletion failed: %v", err)
	}
	// Duplicate is a silent no-op, not an error
	if err := store.AddCompletion("h1", "2024-03-05"); err != nil {
		t.Fatalf("duplicate AddCompletion should be a no-op, got: %v", err)
	}

	count, err := store.CountCompletions()
	if err != nil {
		t.Fatalf("CountCompletions failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 completion, got %d", count)
	}

	has, err := store.HasCompletion("h1", "2024-03-05")
	if err != nil {
		t.Fatalf("HasCompletion failed: %v", err)
	}
	if !has {
		t.Error("expected completion to exist")
	}

	if err := store.DeleteCompletion("h1", "2024-03-05"); err != nil {
		t.Fatalf("DeleteCompletion failed: %v", err)
	}
	has, err = store.HasCompletion("h1", "2024-03-05")
	if err != nil {
		t.Fatalf("HasCompletion failed: %v", err)
	}
	if has {
		t.Error("expected completion to be gone")
	}
}

func TestCompletionsInRange(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Read", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	for _, d := range []string{"2024-03-01", "2024-03-03", "2024-03-07", "2024-04-01"} {
		if err := store.AddCompletion("h1", d); err != nil {
			t.Fatalf("AddCompletion failed: %v", err)
		}
	}

	dates, err := store.CompletionsInRange("h1", "2024-03-02", "2024-03-31")
	if err != nil {
		t.Fatalf("CompletionsInRange failed: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2024-03-03" || dates[1] != "2024-03-07" {
		t.Errorf("CompletionsInRange = %v", dates)
	}
}

func TestIntervalStateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	state := models.IntervalState{
		HabitID:            "h1",
		NextDue:            "2024-01-01",
		RescheduleIfMissed: true,
	}
	if err := store.SaveIntervalState(state); err != nil {
		t.Fatalf("SaveIntervalState failed: %v", err)
	}

	got, err := store.GetIntervalState("h1")
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if got.NextDue != "2024-01-01" || !got.RescheduleIfMissed || got.LastDue != "" || got.LastCompleted != "" {
		t.Errorf("GetIntervalState = %+v", got)
	}

	// Upsert overwrites
	state.LastCompleted = "2024-01-01"
	state.LastDue = "2024-01-01"
	state.NextDue = "2024-01-04"
	if err := store.SaveIntervalState(state); err != nil {
		t.Fatalf("SaveIntervalState (upsert) failed: %v", err)
	}
	got, err = store.GetIntervalState("h1")
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if got.NextDue != "2024-01-04" || got.LastDue != "2024-01-01" || got.LastCompleted != "2024-01-01" {
		t.Errorf("after upsert, GetIntervalState = %+v", got)
	}

	_, err = store.GetIntervalState("missing")
	if !errors.Is(err, ErrStateNotFound) {
		t.Errorf("expected ErrStateNotFound, got %v", err)
	}
}

func TestListOverdueIntervalStates(t *testing.T) {
	store := newTestStore(t)

	states := []models.IntervalState{
		{HabitID: "overdue", NextDue: "2024-01-01", RescheduleIfMissed: false},
		{HabitID: "due-today", NextDue: "2024-01-10", RescheduleIfMissed: false},
		{HabitID: "future", NextDue: "2024-02-01", RescheduleIfMissed: false},
		{HabitID: "carryover", NextDue: "2024-01-01", RescheduleIfMissed: true},
	}
	for _, st := range states {
		if err := store.SaveIntervalState(st); err != nil {
			t.Fatalf("SaveIntervalState failed: %v", err)
		}
	}

	overdue, err := store.ListOverdueIntervalStates("2024-01-10")
	if err != nil {
		t.Fatalf("ListOverdueIntervalStates failed: %v", err)
	}
	if len(overdue) != 1 {
		t.Fatalf("expected 1 overdue state, got %d", len(overdue))
	}
	if overdue[0].HabitID != "overdue" {
		t.Errorf("expected habit 'overdue', got %q", overdue[0].HabitID)
	}
}

func TestRecordCompletionWithState(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Water plants", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	state := models.IntervalState{
		HabitID:       "h1",
		LastCompleted: "2024-01-10",
		LastDue:       "2024-01-10",
		NextDue:       "2024-01-13",
	}
	if err := store.RecordCompletion("h1", "2024-01-10", &state); err != nil {
		t.Fatalf("RecordCompletion failed: %v", err)
	}

	has, err := store.HasCompletion("h1", "2024-01-10")
	if err != nil {
		t.Fatalf("HasCompletion failed: %v", err)
	}
	if !has {
		t.Error("expected completion to exist")
	}

	got, err := store.GetIntervalState("h1")
	if err != nil {
		t.Fatalf("GetIntervalState failed: %v", err)
	}
	if got.NextDue != "2024-01-13" || got.LastCompleted != "2024-01-10" {
		t.Errorf("GetIntervalState = %+v", got)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	store := newTestStore(t)

	if err := store.AddHabit(testHabit("h1", "Gym", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := store.SetHabitDays("h1", []time.Weekday{time.Monday}); err != nil {
		t.Fatalf("SetHabitDays failed: %v", err)
	}
	if err := store.AddCompletion("h1", "2024-03-05"); err != nil {
		t.Fatalf("AddCompletion failed: %v", err)
	}
	if err := store.SaveIntervalState(models.IntervalState{HabitID: "h1", NextDue: "2024-03-08"}); err != nil {
		t.Fatalf("SaveIntervalState failed: %v", err)
	}

	if err := store.DeleteHabit("h1"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}

	if _, err := store.GetHabit("h1"); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("expected habit gone, got %v", err)
	}
	days, err := store.GetHabitDays("h1")
	if err != nil {
		t.Fatalf("GetHabitDays failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("expected habit days gone, got %v", days)
	}
	count, err := store.CountCompletions()
	if err != nil {
		t.Fatalf("CountCompletions failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected completions gone, got %d", count)
	}
	if _, err := store.GetIntervalState("h1"); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("expected interval state gone, got %v", err)
	}
}

func TestLoadExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "habits.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddHabit(testHabit("h1", "Read", time.Now())); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	habits, err := reopened.GetAllHabits()
	if err != nil {
		t.Fatalf("GetAllHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("GetAllHabits after reopen = %+v", habits)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "nope.db"))
	if err := store.Load(); err == nil {
		t.Error("Load should fail when the database has never been initialized")
	}
}
