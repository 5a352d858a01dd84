package models

import "time"

type ScheduleType string

const (
	ScheduleDaily    ScheduleType = "daily"
	ScheduleCustom   ScheduleType = "custom"
	ScheduleInterval ScheduleType = "interval"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Schedule     ScheduleType `json:"schedule"`
	IntervalDays int          `json:"interval_days,omitempty"` // set iff Schedule == ScheduleInterval
	OneTimeDate  string       `json:"one_time_date,omitempty"` // YYYY-MM-DD; custom habit created for a single day
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Completion marks a habit done on a calendar day. At most one
// completion exists per (habit, day) pair.
type Completion struct {
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// IntervalState tracks the scheduling cursor of an interval habit.
// Date fields hold YYYY-MM-DD strings; empty string means unset.
type IntervalState struct {
	HabitID            string `json:"habit_id"`
	LastCompleted      string `json:"last_completed,omitempty"`
	LastDue            string `json:"last_due,omitempty"`
	NextDue            string `json:"next_due"`
	RescheduleIfMissed bool   `json:"reschedule_if_missed"`
}

// DueHabit pairs a habit with its completion flag for a queried date.
type DueHabit struct {
	Habit     Habit `json:"habit"`
	Completed bool  `json:"completed"`
}
