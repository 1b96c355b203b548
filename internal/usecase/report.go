package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/habitflow-dev/habitflow/internal/period"
	"github.com/habitflow-dev/habitflow/internal/repository"
)

// ReportUsecase computes period-bounded totals and the heatmap date set.
type ReportUsecase struct {
	habits    repository.HabitRepository
	checkIns  repository.CheckInRepository
	entries   repository.TimeEntryRepository
	weekStart time.Weekday
	now       func() time.Time
}

func NewReportUsecase(habits repository.HabitRepository, checkIns repository.CheckInRepository, entries repository.TimeEntryRepository, weekStart time.Weekday) *ReportUsecase {
	return &ReportUsecase{
		habits:    habits,
		checkIns:  checkIns,
		entries:   entries,
		weekStart: weekStart,
		now:       time.Now,
	}
}

type Dashboard struct {
	Period      period.Range
	TotalHabits int
	CheckIns    int
	Minutes     int
}

// GetDashboard defaults to the current calendar week. TotalHabits is a
// lifetime count, never filtered by the range; check-ins and minutes are
// period totals.
func (u *ReportUsecase) GetDashboard(ctx context.Context, userID string, start, end *time.Time) (*Dashboard, error) {
	rng := period.Resolve(start, end, period.Week(u.now(), u.weekStart))

	totalHabits, err := u.habits.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count habits: %w", err)
	}

	checkIns, err := u.checkIns.CountForUser(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("count check-ins: %w", err)
	}

	minutes, err := u.entries.SumMinutesForUser(ctx, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("sum minutes: %w", err)
	}

	return &Dashboard{
		Period:      rng,
		TotalHabits: totalHabits,
		CheckIns:    checkIns,
		Minutes:     minutes,
	}, nil
}

// GetHeatmap defaults to the current calendar year and returns every
// activity instant in range, ascending. Same-day events are not
// deduplicated: each event is one unit of activity. habitID narrows to a
// single habit but the owner filter is applied regardless, so a foreign
// habit id simply yields nothing.
func (u *ReportUsecase) GetHeatmap(ctx context.Context, userID, habitID string, start, end *time.Time) ([]time.Time, error) {
	rng := period.Resolve(start, end, period.Year(u.now()))

	stamps, err := u.checkIns.TimestampsForUser(ctx, userID, habitID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("check-in timestamps: %w", err)
	}

	starts, err := u.entries.StartTimesForUser(ctx, userID, habitID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("time entry starts: %w", err)
	}

	dates := append(stamps, starts...)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
