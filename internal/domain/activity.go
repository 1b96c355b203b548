package domain

import "time"

type ActivityKind string

const (
	ActivityCheckIn   ActivityKind = "check-in"
	ActivityTimeEntry ActivityKind = "time-entry"
)

// HabitRef is the slice of a habit that annotates history events.
type HabitRef struct {
	ID       string
	Name     string
	GoalType GoalType
}

// ActivityEvent is the unified history record: a check-in contributes
// Value=1, a time entry contributes its duration in minutes. Date is the
// check-in timestamp or the entry start time.
type ActivityEvent struct {
	ID    string
	Kind  ActivityKind
	Date  time.Time
	Habit HabitRef
	Value int
}
