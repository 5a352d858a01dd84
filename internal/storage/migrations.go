package storage

import "github.com/niksuyko/habits-app/internal/migration"

// Migrations is the full, ordered schema history for the habits store.
// Changes must stay additive (new tables, new nullable columns) so
// databases written by older releases keep loading.
var Migrations = []migration.Migration{
	{
		Version: 1,
		Name:    "init",
		SQL: `
			CREATE TABLE habits (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				schedule_type TEXT NOT NULL,
				interval_days INTEGER,
				one_time_date TEXT,
				created_at    TEXT NOT NULL,
				updated_at    TEXT NOT NULL
			);

			CREATE TABLE habit_days (
				habit_id TEXT NOT NULL REFERENCES habits(id),
				weekday  INTEGER NOT NULL,
				PRIMARY KEY (habit_id, weekday)
			);

			CREATE TABLE habit_completions (
				habit_id TEXT NOT NULL REFERENCES habits(id),
				date     TEXT NOT NULL,
				PRIMARY KEY (habit_id, date)
			);

			CREATE TABLE interval_habit_state (
				habit_id             TEXT PRIMARY KEY REFERENCES habits(id),
				last_completed       TEXT,
				last_due             TEXT,
				next_due             TEXT NOT NULL,
				reschedule_if_missed INTEGER NOT NULL DEFAULT 0
			);

			CREATE INDEX idx_habit_completions_date ON habit_completions(date);
			CREATE INDEX idx_interval_state_next_due ON interval_habit_state(next_due);
		`,
	},
	{
		Version: 2,
		Name:    "completion_created_at",
		SQL: `
			ALTER TABLE habit_completions ADD COLUMN created_at TEXT;
		`,
	},
}
