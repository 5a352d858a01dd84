package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/niksuyko/habits-app/internal/cli"
	"github.com/niksuyko/habits-app/internal/engine"
	"github.com/niksuyko/habits-app/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Db      string `help:"Database file path." type:"path" default:"~/.config/habits/habits.db"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize habits storage."`
	Add     cli.AddCmd     `cmd:"" help:"Add a new habit."`
	Day     cli.DayCmd     `cmd:"" help:"Show due habits for a day." default:"1"`
	Done    cli.DoneCmd    `cmd:"" help:"Mark a habit completed."`
	Undo    cli.UndoCmd    `cmd:"" help:"Remove a habit completion."`
	List    cli.ListCmd    `cmd:"" help:"List all habits."`
	Delete  cli.DeleteCmd  `cmd:"" help:"Delete a habit and its history."`
	Streak  cli.StreakCmd  `cmd:"" help:"Show completion streaks."`
	Week    cli.WeekCmd    `cmd:"" help:"Show a habit's completions for a week."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show completion totals."`
	Backup  cli.BackupCmd  `cmd:"" help:"Create or list database backups."`
	Restore cli.RestoreCmd `cmd:"" help:"Restore the database from a backup."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run storage diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habits"),
		kong.Description("Daily habit tracker with streaks and interval scheduling"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	store := storage.NewSQLiteStore(CLI.Db)
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Engine: engine.New(store),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
