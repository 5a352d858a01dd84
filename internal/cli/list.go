package cli

import "fmt"

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Engine.ListHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println(headerStyle.Render("Habits:"))
	for _, habit := range habits {
		fmt.Printf("  %-30s %-20s %s\n",
			habit.Name,
			formatSchedule(ctx, habit),
			mutedStyle.Render(habit.ID[:8]),
		)
	}

	return nil
}
