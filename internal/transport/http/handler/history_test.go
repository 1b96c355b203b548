package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/transport/http/handler"
	"github.com/habitflow-dev/habitflow/internal/usecase"
)

type fakeHistoryUsecase struct {
	forHabit func(ctx context.Context, habitID, userID string, start, end *time.Time) (*usecase.HabitHistory, error)
	general  func(ctx context.Context, userID string, start, end *time.Time) ([]domain.ActivityEvent, error)
}

func (f *fakeHistoryUsecase) ForHabit(ctx context.Context, habitID, userID string, start, end *time.Time) (*usecase.HabitHistory, error) {
	return f.forHabit(ctx, habitID, userID, start, end)
}

func (f *fakeHistoryUsecase) General(ctx context.Context, userID string, start, end *time.Time) ([]domain.ActivityEvent, error) {
	return f.general(ctx, userID, start, end)
}

func newHistoryEngine(uc *fakeHistoryUsecase) *gin.Engine {
	h := handler.NewHistoryHandler(uc, testLogger())

	r := gin.New()
	authed := r.Group("/", asUser(testUserID))
	authed.GET("/habits/history", h.General)
	authed.GET("/habits/:id/history", h.ForHabit)
	return r
}

func TestHabitHistory_CountHabit_ReturnsCheckIns(t *testing.T) {
	uc := &fakeHistoryUsecase{
		forHabit: func(_ context.Context, habitID, _ string, _, _ *time.Time) (*usecase.HabitHistory, error) {
			return &usecase.HabitHistory{
				Habit: &domain.Habit{ID: habitID, GoalType: domain.GoalCount},
				CheckIns: []*domain.CheckIn{
					{ID: "ci-1", HabitID: habitID, Timestamp: time.Now()},
					{ID: "ci-2", HabitID: habitID, Timestamp: time.Now()},
				},
			}, nil
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/"+testHabitID+"/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body []struct {
		ID      string `json:"id"`
		HabitID string `json:"habit_id"`
	}
	decodeBody(t, w, &body)
	if len(body) != 2 || body[0].ID != "ci-1" {
		t.Errorf("body = %+v", body)
	}
}

func TestHabitHistory_DurationHabit_ReturnsTimeEntries(t *testing.T) {
	uc := &fakeHistoryUsecase{
		forHabit: func(_ context.Context, habitID, _ string, _, _ *time.Time) (*usecase.HabitHistory, error) {
			return &usecase.HabitHistory{
				Habit: &domain.Habit{ID: habitID, GoalType: domain.GoalDuration},
				TimeEntries: []*domain.TimeEntry{
					{ID: "te-1", HabitID: habitID, DurationMinutes: 25},
				},
			}, nil
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/"+testHabitID+"/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body []struct {
		ID              string `json:"id"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	decodeBody(t, w, &body)
	if len(body) != 1 || body[0].DurationMinutes != 25 {
		t.Errorf("body = %+v", body)
	}
}

func TestHabitHistory_EmptyIsJSONArray(t *testing.T) {
	uc := &fakeHistoryUsecase{
		forHabit: func(_ context.Context, habitID, _ string, _, _ *time.Time) (*usecase.HabitHistory, error) {
			return &usecase.HabitHistory{
				Habit: &domain.Habit{ID: habitID, GoalType: domain.GoalCount},
			}, nil
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/"+testHabitID+"/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}

func TestHabitHistory_NotOwned_Returns404(t *testing.T) {
	uc := &fakeHistoryUsecase{
		forHabit: func(_ context.Context, _, _ string, _, _ *time.Time) (*usecase.HabitHistory, error) {
			return nil, domain.ErrHabitNotFound
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/"+testHabitID+"/history")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHabitHistory_BadDate_Returns400(t *testing.T) {
	w := doRequest(newHistoryEngine(&fakeHistoryUsecase{}), http.MethodGet,
		"/habits/"+testHabitID+"/history?startDate=yesterday")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGeneralHistory_ProjectsEvents(t *testing.T) {
	ts := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	uc := &fakeHistoryUsecase{
		general: func(_ context.Context, userID string, _, _ *time.Time) ([]domain.ActivityEvent, error) {
			if userID != testUserID {
				t.Errorf("userID = %q, want context user", userID)
			}
			return []domain.ActivityEvent{
				{
					ID:    "te-1",
					Kind:  domain.ActivityTimeEntry,
					Date:  ts,
					Habit: domain.HabitRef{ID: testHabitID, Name: "Deep work", GoalType: domain.GoalDuration},
					Value: 45,
				},
				{
					ID:    "ci-1",
					Kind:  domain.ActivityCheckIn,
					Date:  ts.Add(-time.Hour),
					Habit: domain.HabitRef{ID: testHabitID, Name: "Drink water", GoalType: domain.GoalCount},
					Value: 1,
				},
			}, nil
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body []struct {
		ID    string `json:"id"`
		Kind  string `json:"kind"`
		Value int    `json:"value"`
		Habit struct {
			Name     string `json:"name"`
			GoalType string `json:"goal_type"`
		} `json:"habit"`
	}
	decodeBody(t, w, &body)
	if len(body) != 2 {
		t.Fatalf("len = %d, want 2", len(body))
	}
	if body[0].Kind != "time-entry" || body[0].Value != 45 || body[0].Habit.Name != "Deep work" {
		t.Errorf("body[0] = %+v", body[0])
	}
	if body[1].Kind != "check-in" || body[1].Value != 1 {
		t.Errorf("body[1] = %+v", body[1])
	}
}

func TestGeneralHistory_EmptyIsJSONArray(t *testing.T) {
	uc := &fakeHistoryUsecase{
		general: func(_ context.Context, _ string, _, _ *time.Time) ([]domain.ActivityEvent, error) {
			return nil, nil
		},
	}
	w := doRequest(newHistoryEngine(uc), http.MethodGet, "/habits/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "[]" {
		t.Errorf("body = %q, want []", w.Body.String())
	}
}
