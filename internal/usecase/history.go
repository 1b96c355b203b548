package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/period"
	"github.com/habitflow-dev/habitflow/internal/repository"
)

// HistoryUsecase merges the two event streams into time-ordered views.
// Omitted date bounds default to the current calendar month, each bound
// independently.
type HistoryUsecase struct {
	habits   repository.HabitRepository
	checkIns repository.CheckInRepository
	entries  repository.TimeEntryRepository
	now      func() time.Time
}

func NewHistoryUsecase(habits repository.HabitRepository, checkIns repository.CheckInRepository, entries repository.TimeEntryRepository) *HistoryUsecase {
	return &HistoryUsecase{
		habits:   habits,
		checkIns: checkIns,
		entries:  entries,
		now:      time.Now,
	}
}

// HabitHistory holds one habit's events. Exactly one of CheckIns or
// TimeEntries is populated; the habit's goal type is the discriminator.
type HabitHistory struct {
	Habit       *domain.Habit
	CheckIns    []*domain.CheckIn
	TimeEntries []*domain.TimeEntry
}

func (u *HistoryUsecase) ForHabit(ctx context.Context, habitID, userID string, start, end *time.Time) (*HabitHistory, error) {
	habit, err := u.habits.GetByID(ctx, habitID, userID)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}

	rng := period.Resolve(start, end, period.Month(u.now()))
	history := &HabitHistory{Habit: habit}

	if habit.GoalType == domain.GoalCount {
		history.CheckIns, err = u.checkIns.ListForHabit(ctx, habitID, rng.Start, rng.End)
		if err != nil {
			return nil, fmt.Errorf("list check-ins: %w", err)
		}
		return history, nil
	}

	history.TimeEntries, err = u.entries.ListForHabit(ctx, habitID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return history, nil
}

// General fetches every check-in and time entry across all of the user's
// habits within the range and merges them into one descending timeline.
// Both inputs are already sorted, but the combined list is small enough
// that a single stable sort beats an interleaving merge in clarity.
func (u *HistoryUsecase) General(ctx context.Context, userID string, start, end *time.Time) ([]domain.ActivityEvent, error) {
	rng := period.Resolve(start, end, period.Month(u.now()))

	checkIns, err := u.checkIns.ListForUser(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	entries, err := u.entries.ListForUser(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}

	events := make([]domain.ActivityEvent, 0, len(checkIns)+len(entries))
	for _, c := range checkIns {
		events = append(events, domain.ActivityEvent{
			ID:    c.CheckIn.ID,
			Kind:  domain.ActivityCheckIn,
			Date:  c.CheckIn.Timestamp,
			Habit: c.Habit,
			Value: 1,
		})
	}
	for _, e := range entries {
		events = append(events, domain.ActivityEvent{
			ID:    e.Entry.ID,
			Kind:  domain.ActivityTimeEntry,
			Date:  e.Entry.StartTime,
			Habit: e.Habit,
			Value: e.Entry.DurationMinutes,
		})
	}

	// Stable: ties keep check-ins before time entries, matching fetch order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events, nil
}
