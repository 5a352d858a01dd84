package cli

import (
	"fmt"

	"github.com/niksuyko/habits-app/internal/engine"
	"github.com/niksuyko/habits-app/internal/models"
)

type AddCmd struct {
	Name       string `arg:"" help:"Habit name."`
	Schedule   string `short:"s" help:"Schedule type (daily|custom|interval)." default:"daily"`
	Days       string `short:"w" help:"Comma-separated weekdays for custom habits (e.g. mon,wed,fri)."`
	Once       string `short:"o" help:"One-time date (YYYY-MM-DD) for a habit that applies to a single day."`
	Interval   int    `short:"i" help:"Interval length in days for interval habits."`
	Start      string `help:"First due date for interval habits (YYYY-MM-DD, defaults to today)."`
	Reschedule bool   `short:"r" help:"Keep a missed interval occurrence visible until completed instead of skipping to the next cycle."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	spec := engine.HabitSpec{
		Name:               c.Name,
		Schedule:           models.ScheduleType(c.Schedule),
		OneTimeDate:        c.Once,
		IntervalDays:       c.Interval,
		StartDate:          c.Start,
		RescheduleIfMissed: c.Reschedule,
	}

	if c.Days != "" {
		days, err := parseWeekdays(c.Days)
		if err != nil {
			return err
		}
		spec.Days = days
	}

	habit, err := ctx.Engine.CreateHabit(spec)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, ID: %s)\n", habit.Name, formatSchedule(ctx, habit), habit.ID)
	return nil
}
