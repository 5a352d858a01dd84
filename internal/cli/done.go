package cli

import "fmt"

type DoneCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `arg:"" help:"Date to complete (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Engine.Complete(habit.ID, date); err != nil {
		return err
	}

	fmt.Printf("Completed %s for %s\n", habit.Name, date)
	return nil
}

type UndoCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `arg:"" help:"Date to uncomplete (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *UndoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}
	date, err := parseDateArg(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Engine.Uncomplete(habit.ID, date); err != nil {
		return err
	}

	fmt.Printf("Removed completion of %s for %s\n", habit.Name, date)
	return nil
}
