package engine

import (
	"errors"
	"time"

	"github.com/niksuyko/habits-app/internal/dateutil"
	"github.com/niksuyko/habits-app/internal/models"
	"github.com/niksuyko/habits-app/internal/storage"
)

// DueHabitsForDate returns the habits due on a calendar date, joined
// with their completion flags, ordered by habit creation time. Overdue
// interval habits are advanced first so next/last due dates reflect the
// queried date; the advance is idempotent and safe on every read.
func (e *Engine) DueHabitsForDate(date string) ([]models.DueHabit, error) {
	if _, err := dateutil.Parse(date); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	if err := e.AdvanceOverdue(date); err != nil {
		return nil, err
	}

	habits, err := e.store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	dow, err := dateutil.Weekday(date)
	if err != nil {
		return nil, err
	}

	var due []models.DueHabit
	for _, habit := range habits {
		completed, err := e.store.HasCompletion(habit.ID, date)
		if err != nil {
			return nil, err
		}

		isDue, err := e.isDueOn(habit, date, dow, completed)
		if err != nil {
			return nil, err
		}
		if isDue {
			due = append(due, models.DueHabit{Habit: habit, Completed: completed})
		}
	}

	return due, nil
}

func (e *Engine) isDueOn(habit models.Habit, date string, dow time.Weekday, completed bool) (bool, error) {
	switch habit.Schedule {
	case models.ScheduleDaily:
		return true, nil

	case models.ScheduleCustom:
		// One-time habits match their exact date only, never a weekday.
		if habit.OneTimeDate != "" {
			return habit.OneTimeDate == date, nil
		}
		days, err := e.store.GetHabitDays(habit.ID)
		if err != nil {
			return false, err
		}
		for _, day := range days {
			if day == dow {
				return true, nil
			}
		}
		return false, nil

	case models.ScheduleInterval:
		return e.intervalDueOn(habit, date, completed)
	}

	return false, nil
}

// intervalDueOn decides interval-habit visibility for a date. A habit
// is due when any of these hold:
//
//  1. it was completed on the date (stays visible on its completion
//     day even after the state advanced past it)
//  2. the date is its next due date
//  3. it carries missed occurrences forward and is overdue
//  4. it carries forward, and the date falls between the occurrence it
//     last tracked (lastDue) and a later completion that covered it
//  5. it does not carry forward, the date is the occurrence it most
//     recently skipped past (lastDue), and that occurrence was never
//     completed
//
// Rule 5 surfaces a missed occurrence only on its single recomputed due
// day; the days skipped over by an auto-advance never show the habit.
// That is intentional and pairs with how AdvanceOverdue recomputes
// lastDue.
func (e *Engine) intervalDueOn(habit models.Habit, date string, completed bool) (bool, error) {
	if completed {
		return true, nil
	}

	state, err := e.store.GetIntervalState(habit.ID)
	if errors.Is(err, storage.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if state.NextDue == date {
		return true, nil
	}

	if state.RescheduleIfMissed {
		if state.NextDue < date {
			return true, nil
		}
		if state.LastDue != "" && state.LastCompleted != "" &&
			state.LastDue <= date && state.LastCompleted > date {
			return true, nil
		}
		return false, nil
	}

	if state.LastDue == date &&
		(state.LastCompleted == "" || state.LastCompleted != state.LastDue) {
		return true, nil
	}

	return false, nil
}
