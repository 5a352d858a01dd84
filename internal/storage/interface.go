package storage

import (
	"errors"
	"time"

	"github.com/niksuyko/habits-app/internal/models"
)

// ErrHabitNotFound is returned when an operation names a habit id that
// does not exist in the store.
var ErrHabitNotFound = errors.New("habit not found")

// ErrStateNotFound is returned when an interval habit has no scheduling
// state record.
var ErrStateNotFound = errors.New("interval state not found")

// Provider is the durable store the engine runs against. All dates are
// YYYY-MM-DD strings. Implementations serialize each call; the engine
// holds no locks of its own.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Weekday assignments for custom habits
	SetHabitDays(habitID string, days []time.Weekday) error
	GetHabitDays(habitID string) ([]time.Weekday, error)

	// Completions
	AddCompletion(habitID, date string) error
	DeleteCompletion(habitID, date string) error
	HasCompletion(habitID, date string) (bool, error)
	CompletionsInRange(habitID, from, to string) ([]string, error)
	CountCompletions() (int, error)
	CountHabitCompletions(habitID string) (int, error)

	// Interval scheduling state
	GetIntervalState(habitID string) (models.IntervalState, error)
	SaveIntervalState(models.IntervalState) error
	ListOverdueIntervalStates(before string) ([]models.IntervalState, error)

	// RecordCompletion writes the completion row and, when state is
	// non-nil, the interval-state update in one transaction.
	RecordCompletion(habitID, date string, state *models.IntervalState) error

	// Utils
	Path() string
}
