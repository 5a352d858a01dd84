package cli

import (
	"errors"
	"fmt"

	"github.com/niksuyko/habits-app/internal/backup"
	"github.com/niksuyko/habits-app/internal/dateutil"
	"github.com/niksuyko/habits-app/internal/migration"
	"github.com/niksuyko/habits-app/internal/models"
	"github.com/niksuyko/habits-app/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}

		if err := checkIntervalStateConsistency(ctx); err != nil {
			fmt.Printf("❌ Interval state consistency: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Interval state consistency: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Interval state consistency: SKIPPED (database not reachable)\n")
	}

	// Backups are a warning, not a failure
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	store, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return fmt.Errorf("schema check requires the sqlite store")
	}

	runner := migration.NewRunner(store.DB(), storage.Migrations)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	if latest := runner.LatestVersion(); current < latest {
		return fmt.Errorf("database at schema version %d, %d pending migration(s)", current, latest-current)
	}
	return nil
}

func checkIntervalStateConsistency(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	var problems []string
	for _, habit := range habits {
		if habit.Schedule != models.ScheduleInterval {
			continue
		}
		if habit.IntervalDays < 1 {
			problems = append(problems, fmt.Sprintf("habit %s (%s) has no interval length", habit.ID[:8], habit.Name))
			continue
		}

		state, err := ctx.Store.GetIntervalState(habit.ID)
		if errors.Is(err, storage.ErrStateNotFound) {
			problems = append(problems, fmt.Sprintf("habit %s (%s) has no scheduling state", habit.ID[:8], habit.Name))
			continue
		}
		if err != nil {
			return err
		}

		for field, value := range map[string]string{
			"next_due":       state.NextDue,
			"last_due":       state.LastDue,
			"last_completed": state.LastCompleted,
		} {
			if value == "" && field != "next_due" {
				continue
			}
			if _, err := dateutil.Parse(value); err != nil {
				problems = append(problems, fmt.Sprintf("habit %s (%s) has malformed %s %q", habit.ID[:8], habit.Name, field, value))
			}
		}
	}

	if len(problems) > 0 {
		msg := problems[0]
		if len(problems) > 1 {
			msg = fmt.Sprintf("%s (and %d more)", msg, len(problems)-1)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	m := backup.NewManager(ctx.Store.Path())
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; run 'habits backup'")
	}
	return nil
}
