package domain

import (
	"errors"
	"time"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrCheckInNotFound   = errors.New("check-in not found")
	ErrTimeEntryNotFound = errors.New("time entry not found")
	ErrGoalTypeMismatch  = errors.New("operation does not match the habit's goal type")
	ErrSessionTooShort   = errors.New("session must span at least one minute")
)

// GoalType is fixed at habit creation and decides which logging
// operation is legal: check-ins for COUNT, time entries for DURATION.
type GoalType string

const (
	GoalCount    GoalType = "COUNT"
	GoalDuration GoalType = "DURATION"
)

type Habit struct {
	ID        string
	UserID    string
	Name      string
	GoalType  GoalType
	GoalValue int // target count per day, or target minutes per day

	DaysOfWeek    []int    // subset of 0 (Sunday) .. 6 (Saturday)
	ReminderTimes []string // HH:mm, informational only

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckIn is one discrete occurrence of a COUNT habit.
type CheckIn struct {
	ID        string
	HabitID   string
	Timestamp time.Time
	CreatedAt time.Time
}

// TimeEntry is one start/end-bounded session of a DURATION habit.
// DurationMinutes is derived from the bounds at write time and stored.
type TimeEntry struct {
	ID              string
	HabitID         string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	CreatedAt       time.Time
}
