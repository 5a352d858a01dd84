package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/niksuyko/habits-app/internal/dateutil"
)

type WeekCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Start string `arg:"" optional:"" help:"Week start date (YYYY-MM-DD, defaults to the most recent Sunday)."`
}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	start := c.Start
	if start == "" {
		now := time.Now()
		start = dateutil.Format(now.AddDate(0, 0, -int(now.Weekday())))
	}

	progress, err := ctx.Engine.WeekProgress(habit.ID, start)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s, week of %s", habit.Name, start)))

	var labels, cells []string
	day := start
	for i := 0; i < 7; i++ {
		wd, err := dateutil.Weekday(day)
		if err != nil {
			return err
		}
		labels = append(labels, fmt.Sprintf("%-3s", wd.String()[:2]))

		if progress[i] {
			cells = append(cells, filledCell+" ")
		} else {
			cells = append(cells, emptyCell+" ")
		}

		if day, err = dateutil.AddDays(day, 1); err != nil {
			return err
		}
	}

	fmt.Println("  " + strings.Join(labels, ""))
	fmt.Println("  " + strings.Join(cells, ""))

	return nil
}
