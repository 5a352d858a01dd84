package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	total, err := ctx.Engine.TotalCompletions()
	if err != nil {
		return err
	}

	habits, err := ctx.Engine.ListHabits()
	if err != nil {
		return err
	}

	fmt.Printf("Total completions: %d across %d habit(s)\n", total, len(habits))
	if len(habits) == 0 {
		return nil
	}

	fmt.Println()
	for _, habit := range habits {
		count, err := ctx.Engine.HabitCompletions(habit.ID)
		if err != nil {
			return err
		}
		streak, err := ctx.Engine.HabitStreak(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  %-30s %4d completion(s), streak %d\n", habit.Name, count, streak)
	}

	return nil
}
