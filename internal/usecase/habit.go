package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/metrics"
	"github.com/habitflow-dev/habitflow/internal/repository"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// HabitUsecase is the habit lifecycle manager: it owns the ownership checks
// and the goal-type invariants on every mutating operation.
type HabitUsecase struct {
	habits   repository.HabitRepository
	checkIns repository.CheckInRepository
	entries  repository.TimeEntryRepository
	now      func() time.Time
}

func NewHabitUsecase(habits repository.HabitRepository, checkIns repository.CheckInRepository, entries repository.TimeEntryRepository) *HabitUsecase {
	return &HabitUsecase{
		habits:   habits,
		checkIns: checkIns,
		entries:  entries,
		now:      time.Now,
	}
}

type CreateHabitInput struct {
	UserID        string
	Name          string
	GoalType      domain.GoalType
	GoalValue     int
	DaysOfWeek    []int
	ReminderTimes []string
}

func (u *HabitUsecase) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	reminders := input.ReminderTimes
	if reminders == nil {
		reminders = []string{}
	}

	habit, err := u.habits.Create(ctx, &domain.Habit{
		UserID:        input.UserID,
		Name:          input.Name,
		GoalType:      input.GoalType,
		GoalValue:     input.GoalValue,
		DaysOfWeek:    input.DaysOfWeek,
		ReminderTimes: reminders,
	})
	if err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	return habit, nil
}

func (u *HabitUsecase) Get(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := u.habits.GetByID(ctx, habitID, userID)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	return habit, nil
}

// Update applies a partial merge; omitted fields are left unchanged.
// Goal type is fixed at creation and is not updatable.
func (u *HabitUsecase) Update(ctx context.Context, habitID, userID string, upd repository.HabitUpdate) (*domain.Habit, error) {
	habit, err := u.habits.Update(ctx, habitID, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("update habit: %w", err)
	}
	return habit, nil
}

func (u *HabitUsecase) Delete(ctx context.Context, habitID, userID string) error {
	if err := u.habits.Delete(ctx, habitID, userID); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

// CheckIn records one occurrence, stamped now. Only COUNT habits accept
// check-ins.
func (u *HabitUsecase) CheckIn(ctx context.Context, habitID, userID string) (*domain.CheckIn, error) {
	habit, err := u.habits.GetByID(ctx, habitID, userID)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	if habit.GoalType != domain.GoalCount {
		return nil, domain.ErrGoalTypeMismatch
	}

	checkIn, err := u.checkIns.Create(ctx, habitID, u.now())
	if err != nil {
		return nil, fmt.Errorf("create check-in: %w", err)
	}
	metrics.ActivityEventsTotal.WithLabelValues("check_in").Inc()
	return checkIn, nil
}

// LogTime records a session for a DURATION habit. The stored duration is
// the span rounded to whole minutes, half away from zero; spans shorter
// than one minute are rejected.
func (u *HabitUsecase) LogTime(ctx context.Context, habitID, userID string, start, end time.Time) (*domain.TimeEntry, error) {
	habit, err := u.habits.GetByID(ctx, habitID, userID)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}
	if habit.GoalType != domain.GoalDuration {
		return nil, domain.ErrGoalTypeMismatch
	}

	span := end.Sub(start)
	if span < time.Minute {
		return nil, domain.ErrSessionTooShort
	}
	minutes := int(math.Round(span.Seconds() / 60))

	entry, err := u.entries.Create(ctx, &domain.TimeEntry{
		HabitID:         habitID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: minutes,
	})
	if err != nil {
		return nil, fmt.Errorf("create time entry: %w", err)
	}
	metrics.ActivityEventsTotal.WithLabelValues("time_entry").Inc()
	return entry, nil
}

func (u *HabitUsecase) RemoveCheckIn(ctx context.Context, checkInID, userID string) error {
	if err := u.checkIns.Delete(ctx, checkInID, userID); err != nil {
		return fmt.Errorf("remove check-in: %w", err)
	}
	return nil
}

func (u *HabitUsecase) RemoveTimeEntry(ctx context.Context, entryID, userID string) error {
	if err := u.entries.Delete(ctx, entryID, userID); err != nil {
		return fmt.Errorf("remove time entry: %w", err)
	}
	return nil
}

type ListHabitsInput struct {
	UserID   string
	Page     int
	PerPage  int
	Search   string
	GoalType domain.GoalType
	OrderAsc bool
}

type ListMeta struct {
	Total    int
	Page     int
	PerPage  int
	LastPage int
}

type ListHabitsResult struct {
	Habits []*domain.Habit
	Meta   ListMeta
}

// List is paginated with a 1-based page index. Total is counted over the
// same filter as the page slice; the two reads may observe different
// snapshots under concurrent writes, which is tolerated.
func (u *HabitUsecase) List(ctx context.Context, input ListHabitsInput) (ListHabitsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	perPage := input.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	filter := repository.ListHabitsInput{
		UserID:   input.UserID,
		Search:   input.Search,
		GoalType: input.GoalType,
		Offset:   (page - 1) * perPage,
		Limit:    perPage,
		OrderAsc: input.OrderAsc,
	}

	total, err := u.habits.Count(ctx, filter)
	if err != nil {
		return ListHabitsResult{}, fmt.Errorf("count habits: %w", err)
	}

	habits, err := u.habits.List(ctx, filter)
	if err != nil {
		return ListHabitsResult{}, fmt.Errorf("list habits: %w", err)
	}

	return ListHabitsResult{
		Habits: habits,
		Meta: ListMeta{
			Total:    total,
			Page:     page,
			PerPage:  perPage,
			LastPage: (total + perPage - 1) / perPage,
		},
	}, nil
}
