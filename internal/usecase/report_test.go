package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/habitflow-dev/habitflow/internal/usecase"
)

func TestGetDashboard_AggregatesTotals(t *testing.T) {
	habits := &fakeHabitRepo{
		countByUser: func(_ context.Context, userID string) (int, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want user-1", userID)
			}
			return 4, nil
		},
	}
	checkIns := &fakeCheckInRepo{
		countForUser: func(_ context.Context, _ string, _, _ time.Time) (int, error) {
			return 12, nil
		},
	}
	entries := &fakeTimeEntryRepo{
		sumMinutesForUser: func(_ context.Context, _ string, _, _ time.Time) (int, error) {
			return 30 + 45 + 15, nil
		},
	}
	uc := usecase.NewReportUsecase(habits, checkIns, entries, time.Sunday)

	dash, err := uc.GetDashboard(context.Background(), "user-1", nil, nil)
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}

	if dash.TotalHabits != 4 {
		t.Errorf("TotalHabits = %d, want 4", dash.TotalHabits)
	}
	if dash.CheckIns != 12 {
		t.Errorf("CheckIns = %d, want 12", dash.CheckIns)
	}
	if dash.Minutes != 90 {
		t.Errorf("Minutes = %d, want 90", dash.Minutes)
	}
	if dash.Period.Start.IsZero() || !dash.Period.End.After(dash.Period.Start) {
		t.Errorf("period not resolved: %+v", dash.Period)
	}
}

func TestGetDashboard_TotalHabitsIgnoresRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	habits := &fakeHabitRepo{
		// Lifetime count has no range parameters at all; reaching this
		// fake proves the range never leaks into it.
		countByUser: func(_ context.Context, _ string) (int, error) { return 7, nil },
	}
	checkIns := &fakeCheckInRepo{
		countForUser: func(_ context.Context, _ string, from, _ time.Time) (int, error) {
			if !from.Equal(start) {
				t.Errorf("check-in from = %v, want %v", from, start)
			}
			return 0, nil
		},
	}
	entries := &fakeTimeEntryRepo{
		sumMinutesForUser: func(_ context.Context, _ string, _, _ time.Time) (int, error) { return 0, nil },
	}
	uc := usecase.NewReportUsecase(habits, checkIns, entries, time.Sunday)

	dash, err := uc.GetDashboard(context.Background(), "user-1", timePtr(start), timePtr(end))
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.TotalHabits != 7 {
		t.Errorf("TotalHabits = %d, want lifetime 7", dash.TotalHabits)
	}
}

func TestGetHeatmap_MergesAscendingWithoutDedup(t *testing.T) {
	day := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	morning := day.Add(8 * time.Hour)
	noon := day.Add(12 * time.Hour)
	evening := day.Add(20 * time.Hour)

	checkIns := &fakeCheckInRepo{
		timestampsForUser: func(_ context.Context, _, _ string, _, _ time.Time) ([]time.Time, error) {
			return []time.Time{morning, evening}, nil
		},
	}
	entries := &fakeTimeEntryRepo{
		startTimesForUser: func(_ context.Context, _, _ string, _, _ time.Time) ([]time.Time, error) {
			return []time.Time{noon}, nil
		},
	}
	uc := usecase.NewReportUsecase(&fakeHabitRepo{}, checkIns, entries, time.Sunday)

	dates, err := uc.GetHeatmap(context.Background(), "user-1", "", nil, nil)
	if err != nil {
		t.Fatalf("GetHeatmap: %v", err)
	}

	// Three same-day events stay three entries, sorted ascending.
	want := []time.Time{morning, noon, evening}
	if len(dates) != len(want) {
		t.Fatalf("len = %d, want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGetHeatmap_PassesHabitFilterThrough(t *testing.T) {
	var gotCheckInHabit, gotEntryHabit string
	checkIns := &fakeCheckInRepo{
		timestampsForUser: func(_ context.Context, userID, habitID string, _, _ time.Time) ([]time.Time, error) {
			if userID != "user-1" {
				t.Errorf("userID = %q, want user-1", userID)
			}
			gotCheckInHabit = habitID
			return nil, nil
		},
	}
	entries := &fakeTimeEntryRepo{
		startTimesForUser: func(_ context.Context, _, habitID string, _, _ time.Time) ([]time.Time, error) {
			gotEntryHabit = habitID
			return nil, nil
		},
	}
	uc := usecase.NewReportUsecase(&fakeHabitRepo{}, checkIns, entries, time.Sunday)

	if _, err := uc.GetHeatmap(context.Background(), "user-1", "habit-9", nil, nil); err != nil {
		t.Fatalf("GetHeatmap: %v", err)
	}
	if gotCheckInHabit != "habit-9" || gotEntryHabit != "habit-9" {
		t.Errorf("habit filter = %q/%q, want habit-9", gotCheckInHabit, gotEntryHabit)
	}
}
