package engine

import (
	"github.com/niksuyko/habits-app/internal/dateutil"
)

// HabitStreak counts consecutive completed days for one habit, walking
// backward from today. An incomplete "today" never zeroes an intact
// streak: if today has no completion yet the count simply starts at
// yesterday. A missed day before today ends the streak.
func (e *Engine) HabitStreak(habitID string) (int, error) {
	if _, err := e.store.GetHabit(habitID); err != nil {
		return 0, err
	}

	cursor := dateutil.Format(e.now())
	doneToday, err := e.store.HasCompletion(habitID, cursor)
	if err != nil {
		return 0, err
	}
	if !doneToday {
		if cursor, err = dateutil.AddDays(cursor, -1); err != nil {
			return 0, err
		}
	}

	streak := 0
	for {
		done, err := e.store.HasCompletion(habitID, cursor)
		if err != nil {
			return 0, err
		}
		if !done {
			return streak, nil
		}
		streak++
		if cursor, err = dateutil.AddDays(cursor, -1); err != nil {
			return 0, err
		}
	}
}

// DailyCompletionStreak counts consecutive fully-completed days ending
// at startDate. A day is complete only when it has at least one due
// habit and every due habit is completed; a day with zero due habits is
// never complete and ends the streak. When startDate itself has due
// habits still in progress, counting starts from the day before
// instead. A habit-less startDate gets no such grace and yields 0
// outright.
func (e *Engine) DailyCompletionStreak(startDate string) (int, error) {
	if _, err := dateutil.Parse(startDate); err != nil {
		return 0, &ValidationError{Msg: err.Error()}
	}

	cursor := startDate
	hasDue, allDone, err := e.dayCompletion(cursor)
	if err != nil {
		return 0, err
	}
	if hasDue && !allDone {
		if cursor, err = dateutil.AddDays(cursor, -1); err != nil {
			return 0, err
		}
	}

	streak := 0
	for {
		hasDue, allDone, err := e.dayCompletion(cursor)
		if err != nil {
			return 0, err
		}
		if !hasDue || !allDone {
			return streak, nil
		}
		streak++
		if cursor, err = dateutil.AddDays(cursor, -1); err != nil {
			return 0, err
		}
	}
}

func (e *Engine) dayCompletion(date string) (hasDue, allDone bool, err error) {
	due, err := e.DueHabitsForDate(date)
	if err != nil {
		return false, false, err
	}
	if len(due) == 0 {
		return false, false, nil
	}
	for _, d := range due {
		if !d.Completed {
			return true, false, nil
		}
	}
	return true, true, nil
}
