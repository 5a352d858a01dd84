package engine

import (
	"errors"
	"fmt"

	"github.com/niksuyko/habits-app/internal/dateutil"
	"github.com/niksuyko/habits-app/internal/storage"
)

// AdvanceOverdue moves every overdue, non-carryover interval habit past
// its missed occurrences: nextDue jumps forward by whole intervals to
// the first due date on or after the reference date, and lastDue is
// left at the occurrence just before it. Habits that reschedule when
// missed are never touched; they stay visible until completed.
//
// Re-running with the same reference date is a no-op, since every
// advanced habit ends up with nextDue >= referenceDate.
func (e *Engine) AdvanceOverdue(referenceDate string) error {
	if _, err := dateutil.Parse(referenceDate); err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	states, err := e.store.ListOverdueIntervalStates(referenceDate)
	if err != nil {
		return err
	}

	for _, state := range states {
		habit, err := e.store.GetHabit(state.HabitID)
		if errors.Is(err, storage.ErrHabitNotFound) {
			// Orphaned state row; nothing to advance.
			continue
		}
		if err != nil {
			return err
		}
		if habit.IntervalDays < 1 {
			continue
		}

		daysPassed, err := dateutil.DaysBetween(state.NextDue, referenceDate)
		if err != nil {
			return fmt.Errorf("habit %s has malformed next_due: %w", state.HabitID, err)
		}

		// daysPassed > 0 by the overdue query; round up to whole intervals.
		intervalsToAdd := (daysPassed + habit.IntervalDays - 1) / habit.IntervalDays

		newNextDue, err := dateutil.AddDays(state.NextDue, intervalsToAdd*habit.IntervalDays)
		if err != nil {
			return err
		}
		newLastDue, err := dateutil.AddDays(newNextDue, -habit.IntervalDays)
		if err != nil {
			return err
		}

		state.NextDue = newNextDue
		state.LastDue = newLastDue
		if err := e.store.SaveIntervalState(state); err != nil {
			return fmt.Errorf("failed to advance habit %s: %w", state.HabitID, err)
		}
	}

	return nil
}
