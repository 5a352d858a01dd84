package cli

import (
	"fmt"
	"time"

	"github.com/niksuyko/habits-app/internal/dateutil"
)

type StreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or id. Omit for the whole-day completion streak."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.Habit == "" {
		streak, err := ctx.Engine.DailyCompletionStreak(dateutil.Format(time.Now()))
		if err != nil {
			return err
		}
		fmt.Printf("All-habit completion streak: %d day(s)\n", streak)
		return nil
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	streak, err := ctx.Engine.HabitStreak(habit.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d day(s)\n", habit.Name, streak)
	return nil
}
