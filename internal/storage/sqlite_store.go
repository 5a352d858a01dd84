package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/niksuyko/habits-app/internal/migration"
	"github.com/niksuyko/habits-app/internal/models"
	_ "modernc.org/sqlite"
)

// timeLayout pads fractional seconds to a fixed width so stored
// timestamps sort lexicographically in ORDER BY clauses.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habits init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Bring the schema up to date before the engine takes any calls.
	// Fails if the database was written by a newer release.
	if err := s.runMigrations(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, Migrations)
	_, err := runner.ApplyMigrations(nil)
	return err
}

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, schedule_type, interval_days, one_time_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, string(habit.Schedule),
		nullInt(habit.IntervalDays), nullStr(habit.OneTimeDate),
		habit.CreatedAt.UTC().Format(timeLayout),
		habit.UpdatedAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, schedule_type, interval_days, one_time_date, created_at, updated_at
		FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrHabitNotFound)
	}
	return habit, err
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, schedule_type, interval_days, one_time_date, created_at, updated_at
		FROM habits ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	res, err := s.db.Exec(`
		UPDATE habits SET name = ?, schedule_type = ?, interval_days = ?, one_time_date = ?, updated_at = ?
		WHERE id = ?`,
		habit.Name, string(habit.Schedule),
		nullInt(habit.IntervalDays), nullStr(habit.OneTimeDate),
		habit.UpdatedAt.UTC().Format(timeLayout),
		habit.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrHabitNotFound)
	}
	return nil
}

// DeleteHabit removes the habit and cascades to its weekday assignments,
// completions and interval state in one transaction.
func (s *SQLiteStore) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM habits WHERE id = ?", id).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrHabitNotFound)
	}

	for _, q := range []string{
		"DELETE FROM habit_days WHERE habit_id = ?",
		"DELETE FROM habit_completions WHERE habit_id = ?",
		"DELETE FROM interval_habit_state WHERE habit_id = ?",
		"DELETE FROM habits WHERE id = ?",
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetHabitDays replaces the weekday set for a custom habit.
func (s *SQLiteStore) SetHabitDays(habitID string, days []time.Weekday) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habit_days WHERE habit_id = ?", habitID); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO habit_days (habit_id, weekday) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		if _, err := stmt.Exec(habitID, int(day)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHabitDays(habitID string) ([]time.Weekday, error) {
	rows, err := s.db.Query("SELECT weekday FROM habit_days WHERE habit_id = ? ORDER BY weekday", habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []time.Weekday
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, time.Weekday(day))
	}

	return days, rows.Err()
}

// AddCompletion records a completion; duplicates are silent no-ops.
func (s *SQLiteStore) AddCompletion(habitID, date string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO habit_completions (habit_id, date, created_at) VALUES (?, ?, ?)",
		habitID, date, time.Now().UTC().Format(timeLayout),
	)
	return err
}

func (s *SQLiteStore) DeleteCompletion(habitID, date string) error {
	_, err := s.db.Exec("DELETE FROM habit_completions WHERE habit_id = ? AND date = ?", habitID, date)
	return err
}

func (s *SQLiteStore) HasCompletion(habitID, date string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM habit_completions WHERE habit_id = ? AND date = ?",
		habitID, date,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SQLiteStore) CompletionsInRange(habitID, from, to string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT date FROM habit_completions WHERE habit_id = ? AND date >= ? AND date <= ? ORDER BY date",
		habitID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

func (s *SQLiteStore) CountCompletions() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM habit_completions").Scan(&count)
	return count, err
}

func (s *SQLiteStore) CountHabitCompletions(habitID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM habit_completions WHERE habit_id = ?", habitID).Scan(&count)
	return count, err
}

func (s *SQLiteStore) GetIntervalState(habitID string) (models.IntervalState, error) {
	row := s.db.QueryRow(`
		SELECT habit_id, last_completed, last_due, next_due, reschedule_if_missed
		FROM interval_habit_state WHERE habit_id = ?`, habitID)

	state, err := scanIntervalState(row)
	if err == sql.ErrNoRows {
		return models.IntervalState{}, fmt.Errorf("habit %s: %w", habitID, ErrStateNotFound)
	}
	return state, err
}

func (s *SQLiteStore) SaveIntervalState(state models.IntervalState) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO interval_habit_state (habit_id, last_completed, last_due, next_due, reschedule_if_missed)
		VALUES (?, ?, ?, ?, ?)`,
		state.HabitID, nullStr(state.LastCompleted), nullStr(state.LastDue),
		state.NextDue, state.RescheduleIfMissed,
	)
	return err
}

// ListOverdueIntervalStates returns scheduling state for interval habits
// whose next due date precedes the given date and that do not carry
// missed occurrences forward. Reschedule-if-missed habits are never
// auto-advanced and are excluded here.
func (s *SQLiteStore) ListOverdueIntervalStates(before string) ([]models.IntervalState, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, last_completed, last_due, next_due, reschedule_if_missed
		FROM interval_habit_state
		WHERE reschedule_if_missed = 0 AND next_due < ?`, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []models.IntervalState
	for rows.Next() {
		state, err := scanIntervalState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}

	return states, rows.Err()
}

// RecordCompletion inserts the completion row and applies the interval
// state update in a single transaction, so a crash cannot leave a habit
// marked done with a schedule that never advanced.
func (s *SQLiteStore) RecordCompletion(habitID, date string, state *models.IntervalState) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR IGNORE INTO habit_completions (habit_id, date, created_at) VALUES (?, ?, ?)",
		habitID, date, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return err
	}

	if state != nil {
		_, err = tx.Exec(`
			INSERT OR REPLACE INTO interval_habit_state (habit_id, last_completed, last_due, next_due, reschedule_if_missed)
			VALUES (?, ?, ?, ?, ?)`,
			state.HabitID, nullStr(state.LastCompleted), nullStr(state.LastDue),
			state.NextDue, state.RescheduleIfMissed,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var intervalDays sql.NullInt64
	var oneTimeDate sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&h.ID, &h.Name, (*string)(&h.Schedule), &intervalDays, &oneTimeDate, &createdAt, &updatedAt)
	if err != nil {
		return models.Habit{}, err
	}

	if intervalDays.Valid {
		h.IntervalDays = int(intervalDays.Int64)
	}
	if oneTimeDate.Valid {
		h.OneTimeDate = oneTimeDate.String
	}

	if h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s has malformed created_at: %w", h.ID, err)
	}
	if h.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return models.Habit{}, fmt.Errorf("habit %s has malformed updated_at: %w", h.ID, err)
	}

	return h, nil
}

func scanIntervalState(row rowScanner) (models.IntervalState, error) {
	var state models.IntervalState
	var lastCompleted, lastDue sql.NullString

	err := row.Scan(&state.HabitID, &lastCompleted, &lastDue, &state.NextDue, &state.RescheduleIfMissed)
	if err != nil {
		return models.IntervalState{}, err
	}

	if lastCompleted.Valid {
		state.LastCompleted = lastCompleted.String
	}
	if lastDue.Valid {
		state.LastDue = lastDue.String
	}

	return state, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
