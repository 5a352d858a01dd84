// Package migration applies an ordered, versioned sequence of schema
// changes at startup, before the engine accepts any calls. Migrations
// are compiled into the binary; the database records its version in a
// schema_version table. New schema changes must be additive so older
// data keeps loading.
package migration

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration is a single schema step. Versions start at 1 and must be
// unique; statements for one version run inside one transaction.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db         *sql.DB
	migrations []Migration
}

func NewRunner(db *sql.DB, migrations []Migration) *Runner {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Runner{db: db, migrations: sorted}
}

// EnsureSchemaVersionTable creates the version-tracking table if needed.
func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the database's schema version, 0 if the
// database has never been migrated.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion overwrites the recorded schema version.
func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// LatestVersion returns the highest version in the compiled migration
// list, 0 when the list is empty.
func (r *Runner) LatestVersion() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// ValidateVersion fails when the database reports a schema version newer
// than this binary knows about (database written by a newer release).
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	if latest := r.LatestVersion(); current > latest {
		return fmt.Errorf("database schema version %d is newer than supported version %d; upgrade the habits binary", current, latest)
	}
	return nil
}

// ApplyMigrations runs every pending migration in version order, each in
// its own transaction together with the version bump. Returns the number
// of migrations applied. logFn may be nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	if err := r.validateList(); err != nil {
		return 0, err
	}
	if err := r.ValidateVersion(); err != nil {
		return 0, err
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}

		if err := r.applyOne(m); err != nil {
			return applied, err
		}

		if logFn != nil {
			logFn(fmt.Sprintf("Applied migration %03d_%s", m.Version, m.Name))
		}
		applied++
	}

	return applied, nil
}

func (r *Runner) applyOne(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %03d_%s failed: %w", m.Version, m.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
	}

	return tx.Commit()
}

func (r *Runner) validateList() error {
	seen := make(map[int]string, len(r.migrations))
	for _, m := range r.migrations {
		if m.Version < 1 {
			return fmt.Errorf("migration %q: version must be at least 1, got %d", m.Name, m.Version)
		}
		if prev, ok := seen[m.Version]; ok {
			return fmt.Errorf("duplicate migration version %d (%q and %q)", m.Version, prev, m.Name)
		}
		seen[m.Version] = m.Name
	}
	return nil
}
