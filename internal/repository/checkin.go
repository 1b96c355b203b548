package repository

import (
	"context"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
)

// CheckInWithHabit annotates a check-in with its owning habit, for the
// unified history projection.
type CheckInWithHabit struct {
	CheckIn domain.CheckIn
	Habit   domain.HabitRef
}

type CheckInRepository interface {
	Create(ctx context.Context, habitID string, ts time.Time) (*domain.CheckIn, error)
	// Delete removes a check-in only when its habit belongs to userID.
	// Absent and not-owned are both domain.ErrCheckInNotFound.
	Delete(ctx context.Context, id, userID string) error
	// ListForHabit returns check-ins within [from, to], newest first.
	ListForHabit(ctx context.Context, habitID string, from, to time.Time) ([]*domain.CheckIn, error)
	// ListForUser spans every habit owned by userID, newest first.
	ListForUser(ctx context.Context, userID string, from, to time.Time) ([]CheckInWithHabit, error)
	CountForUser(ctx context.Context, userID string, from, to time.Time) (int, error)
	// TimestampsForUser returns raw check-in timestamps for the heatmap.
	// habitID narrows to one habit when non-empty; the owner filter is
	// applied regardless.
	TimestampsForUser(ctx context.Context, userID, habitID string, from, to time.Time) ([]time.Time, error)
}
