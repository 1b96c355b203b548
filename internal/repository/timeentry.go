package repository

import (
	"context"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
)

type TimeEntryWithHabit struct {
	Entry domain.TimeEntry
	Habit domain.HabitRef
}

type TimeEntryRepository interface {
	Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	// Delete removes a time entry only when its habit belongs to userID.
	// Absent and not-owned are both domain.ErrTimeEntryNotFound.
	Delete(ctx context.Context, id, userID string) error
	// ListForHabit filters by entry start time within [from, to], newest first.
	ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.TimeEntry, error)
	ListForUser(ctx context.Context, userID string, from, to time.Time) ([]TimeEntryWithHabit, error)
	SumMinutesForUser(ctx context.Context, userID string, from, to time.Time) (int, error)
	// StartTimesForUser mirrors CheckInRepository.TimestampsForUser for
	// time entries: the owner filter is always applied, habitID only narrows.
	StartTimesForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error)
}
