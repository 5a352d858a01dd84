// Package engine implements habit schedule resolution: which habits are
// due on a calendar date, advancing overdue interval habits, recording
// completions, and computing streaks. It owns all reads and writes to
// the habit store; callers (the CLI today) only go through the Engine.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/niksuyko/habits-app/internal/dateutil"
	"github.com/niksuyko/habits-app/internal/models"
	"github.com/niksuyko/habits-app/internal/storage"
)

type Engine struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}

// HabitSpec describes a habit to create. Exactly one scheduling shape
// applies per Schedule:
//
//	daily:    no extra fields
//	custom:   Days non-empty, or OneTimeDate set (mutually exclusive)
//	interval: IntervalDays >= 1; StartDate defaults to today
type HabitSpec struct {
	Name               string
	Schedule           models.ScheduleType
	Days               []time.Weekday
	OneTimeDate        string
	IntervalDays       int
	StartDate          string
	RescheduleIfMissed bool
}

func (e *Engine) CreateHabit(spec HabitSpec) (models.Habit, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return models.Habit{}, &ValidationError{Msg: "habit name must not be empty"}
	}

	now := e.now()
	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Schedule:  spec.Schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var days []time.Weekday
	var state *models.IntervalState

	switch spec.Schedule {
	case models.ScheduleDaily:
		// Nothing extra to validate.

	case models.ScheduleCustom:
		hasDays := len(spec.Days) > 0
		hasOneTime := spec.OneTimeDate != ""
		if hasDays == hasOneTime {
			return models.Habit{}, &ValidationError{Msg: "custom habit needs either a weekday set or a one-time date, not both"}
		}
		if hasOneTime {
			if _, err := dateutil.Parse(spec.OneTimeDate); err != nil {
				return models.Habit{}, &ValidationError{Msg: err.Error()}
			}
			habit.OneTimeDate = spec.OneTimeDate
		} else {
			seen := make(map[time.Weekday]bool)
			for _, day := range spec.Days {
				if day < time.Sunday || day > time.Saturday {
					return models.Habit{}, &ValidationError{Msg: fmt.Sprintf("invalid weekday %d", day)}
				}
				if !seen[day] {
					seen[day] = true
					days = append(days, day)
				}
			}
		}

	case models.ScheduleInterval:
		if spec.IntervalDays < 1 {
			return models.Habit{}, &ValidationError{Msg: "interval habit needs a positive interval length"}
		}
		habit.IntervalDays = spec.IntervalDays

		startDate := spec.StartDate
		if startDate == "" {
			startDate = dateutil.Format(now)
		} else if _, err := dateutil.Parse(startDate); err != nil {
			return models.Habit{}, &ValidationError{Msg: err.Error()}
		}
		state = &models.IntervalState{
			HabitID:            habit.ID,
			NextDue:            startDate,
			RescheduleIfMissed: spec.RescheduleIfMissed,
		}

	default:
		return models.Habit{}, &ValidationError{Msg: fmt.Sprintf("unknown schedule type %q", spec.Schedule)}
	}

	if err := e.store.AddHabit(habit); err != nil {
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}
	if len(days) > 0 {
		if err := e.store.SetHabitDays(habit.ID, days); err != nil {
			return models.Habit{}, fmt.Errorf("failed to save habit days: %w", err)
		}
	}
	if state != nil {
		if err := e.store.SaveIntervalState(*state); err != nil {
			return models.Habit{}, fmt.Errorf("failed to save interval state: %w", err)
		}
	}

	return habit, nil
}

// Complete records a completion for the habit on the given date.
// Completing an interval habit anchors its next occurrence to the
// completion date (not the original due date): lastDue takes the
// previously tracked nextDue, lastCompleted and the new cycle start at
// the completion date. Duplicate completions are silent no-ops.
func (e *Engine) Complete(habitID, date string) error {
	if _, err := dateutil.Parse(date); err != nil {
		return &ValidationError{Msg: err.Error()}
	}

	habit, err := e.store.GetHabit(habitID)
	if err != nil {
		return err
	}

	var state *models.IntervalState
	if habit.Schedule == models.ScheduleInterval {
		current, err := e.store.GetIntervalState(habitID)
		if err != nil && !errors.Is(err, storage.ErrStateNotFound) {
			return err
		}

		// The due date this habit was tracking becomes lastDue, falling
		// back to the completion date when no state record exists.
		trackedDue := current.NextDue
		if trackedDue == "" {
			trackedDue = date
		}

		newNextDue, err := dateutil.AddDays(date, habit.IntervalDays)
		if err != nil {
			return err
		}
		state = &models.IntervalState{
			HabitID:            habitID,
			LastCompleted:      date,
			LastDue:            trackedDue,
			NextDue:            newNextDue,
			RescheduleIfMissed: current.RescheduleIfMissed,
		}
	}

	return e.store.RecordCompletion(habitID, date, state)
}

// Uncomplete removes the completion for (habit, date) if present. It
// deliberately does not revert the interval-state changes made by
// Complete; the next occurrence stays anchored to the completion.
func (e *Engine) Uncomplete(habitID, date string) error {
	if _, err := dateutil.Parse(date); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if _, err := e.store.GetHabit(habitID); err != nil {
		return err
	}
	return e.store.DeleteCompletion(habitID, date)
}

// DeleteHabit removes the habit along with its weekday assignments,
// completions and interval state.
func (e *Engine) DeleteHabit(habitID string) error {
	return e.store.DeleteHabit(habitID)
}

func (e *Engine) GetHabit(habitID string) (models.Habit, error) {
	return e.store.GetHabit(habitID)
}

func (e *Engine) ListHabits() ([]models.Habit, error) {
	return e.store.GetAllHabits()
}

func (e *Engine) HabitDays(habitID string) ([]time.Weekday, error) {
	return e.store.GetHabitDays(habitID)
}

func (e *Engine) TotalCompletions() (int, error) {
	return e.store.CountCompletions()
}

func (e *Engine) HabitCompletions(habitID string) (int, error) {
	return e.store.CountHabitCompletions(habitID)
}

// WeekProgress reports completion for each of the seven days starting
// at weekStart.
func (e *Engine) WeekProgress(habitID, weekStart string) ([7]bool, error) {
	var progress [7]bool
	if _, err := dateutil.Parse(weekStart); err != nil {
		return progress, &ValidationError{Msg: err.Error()}
	}
	if _, err := e.store.GetHabit(habitID); err != nil {
		return progress, err
	}

	day := weekStart
	for i := 0; i < 7; i++ {
		done, err := e.store.HasCompletion(habitID, day)
		if err != nil {
			return progress, err
		}
		progress[i] = done

		next, err := dateutil.AddDays(day, 1)
		if err != nil {
			return progress, err
		}
		day = next
	}

	return progress, nil
}
