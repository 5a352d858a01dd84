package cli

import "fmt"

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	due, err := ctx.Engine.DueHabitsForDate(date)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Habits for %s:", date)))
	fmt.Println()

	if len(due) == 0 {
		fmt.Println(mutedStyle.Render("  Nothing due"))
		return nil
	}

	for _, d := range due {
		mark := pendingStyle.Render("[ ]")
		if d.Completed {
			mark = doneStyle.Render("[x]")
		}
		fmt.Printf("  %s %-30s %s\n", mark, d.Habit.Name, mutedStyle.Render(formatSchedule(ctx, d.Habit)))
	}

	return nil
}
