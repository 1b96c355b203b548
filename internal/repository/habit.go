package repository

import (
	"context"

	"github.com/habitflow-dev/habitflow/internal/domain"
)

type ListHabitsInput struct {
	UserID   string
	Search   string          // case-insensitive substring on name, empty = all
	GoalType domain.GoalType // empty = all
	Offset   int
	Limit    int
	OrderAsc bool // created_at ASC when true, DESC otherwise
}

// HabitUpdate is a partial merge: nil pointers and nil slices leave the
// stored value unchanged. Goal type and owner are never updatable.
type HabitUpdate struct {
	Name          *string
	GoalValue     *int
	DaysOfWeek    []int
	ReminderTimes []string
}

// Usecases depend on interfaces, not the pgx implementations, so the store
// can be swapped and tests can inject fakes.
type HabitRepository interface {
	Create(ctx context.Context, h *domain.Habit) (*domain.Habit, error)
	// GetByID resolves a habit scoped to its owner. A habit that exists but
	// belongs to someone else is reported as domain.ErrHabitNotFound.
	GetByID(ctx context.Context, id, userID string) (*domain.Habit, error)
	Update(ctx context.Context, id, userID string, upd HabitUpdate) (*domain.Habit, error)
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, input ListHabitsInput) ([]*domain.Habit, error)
	// Count applies the same filter as List, ignoring Offset/Limit.
	Count(ctx context.Context, input ListHabitsInput) (int, error)
	// CountByUser is the lifetime habit total, independent of any date range.
	CountByUser(ctx context.Context, userID string) (int, error)
}
