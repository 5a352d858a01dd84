package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/niksuyko/habits-app/internal/dateutil"
	"github.com/niksuyko/habits-app/internal/engine"
	"github.com/niksuyko/habits-app/internal/models"
	"github.com/niksuyko/habits-app/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *engine.Engine
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// parseDateArg accepts "today", "yesterday", "tomorrow" or YYYY-MM-DD.
func parseDateArg(s string) (string, error) {
	switch s {
	case "", "today":
		return dateutil.Format(time.Now()), nil
	case "yesterday":
		return dateutil.Format(time.Now().AddDate(0, 0, -1)), nil
	case "tomorrow":
		return dateutil.Format(time.Now().AddDate(0, 0, 1)), nil
	}
	if _, err := dateutil.Parse(s); err != nil {
		return "", fmt.Errorf("invalid date, use YYYY-MM-DD or 'today': %w", err)
	}
	return s, nil
}

// resolveHabit finds a habit by exact name, exact id, or unique id prefix.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	habits, err := ctx.Engine.ListHabits()
	if err != nil {
		return models.Habit{}, err
	}

	var matches []models.Habit
	for _, h := range habits {
		if h.ID == ref || strings.EqualFold(h.Name, ref) {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matches %q", ref)
	default:
		return models.Habit{}, fmt.Errorf("%q is ambiguous, matches %d habits", ref, len(matches))
	}
}

func formatSchedule(ctx *Context, habit models.Habit) string {
	switch habit.Schedule {
	case models.ScheduleDaily:
		return "daily"
	case models.ScheduleCustom:
		if habit.OneTimeDate != "" {
			return fmt.Sprintf("once on %s", habit.OneTimeDate)
		}
		days, err := ctx.Engine.HabitDays(habit.ID)
		if err != nil || len(days) == 0 {
			return "custom"
		}
		var names []string
		for _, wd := range days {
			names = append(names, wd.String()[:3])
		}
		return fmt.Sprintf("on %s", strings.Join(names, ","))
	case models.ScheduleInterval:
		if habit.IntervalDays == 1 {
			return "every day"
		}
		return fmt.Sprintf("every %d days", habit.IntervalDays)
	default:
		return "unknown"
	}
}
