package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/transport/http/middleware"
	"github.com/habitflow-dev/habitflow/internal/usecase"
)

type historyUsecaser interface {
	ForHabit(ctx context.Context, habitID, userID string, start, end *time.Time) (*usecase.HabitHistory, error)
	General(ctx context.Context, userID string, start, end *time.Time) ([]domain.ActivityEvent, error)
}

type HistoryHandler struct {
	uc     historyUsecaser
	logger *slog.Logger
}

func NewHistoryHandler(uc historyUsecaser, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, logger: logger.With("component", "history_handler")}
}

// GET /habits/:id/history
//
// The habit's goal type decides the event kind: COUNT habits answer with
// check-ins, DURATION habits with time entries. Never both.
func (h *HistoryHandler) ForHabit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := q.bounds()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	history, err := h.uc.ForHabit(c.Request.Context(), id, c.GetString(middleware.UserIDKey), start, end)
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
			return
		}
		h.logger.Error("habit history", "habit_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if history.Habit.GoalType == domain.GoalCount {
		items := make([]checkInResponse, 0, len(history.CheckIns))
		for _, checkIn := range history.CheckIns {
			items = append(items, toCheckInResponse(checkIn))
		}
		c.JSON(http.StatusOK, items)
		return
	}

	items := make([]timeEntryResponse, 0, len(history.TimeEntries))
	for _, entry := range history.TimeEntries {
		items = append(items, toTimeEntryResponse(entry))
	}
	c.JSON(http.StatusOK, items)
}

type habitRefResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GoalType string `json:"goal_type"`
}

type activityEventResponse struct {
	ID    string           `json:"id"`
	Kind  string           `json:"kind"`
	Date  time.Time        `json:"date"`
	Habit habitRefResponse `json:"habit"`
	Value int              `json:"value"`
}

// GET /habits/history
func (h *HistoryHandler) General(c *gin.Context) {
	var q dateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := q.bounds()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.uc.General(c.Request.Context(), c.GetString(middleware.UserIDKey), start, end)
	if err != nil {
		h.logger.Error("general history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]activityEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, activityEventResponse{
			ID:   e.ID,
			Kind: string(e.Kind),
			Date: e.Date,
			Habit: habitRefResponse{
				ID:       e.Habit.ID,
				Name:     e.Habit.Name,
				GoalType: string(e.Habit.GoalType),
			},
			Value: e.Value,
		})
	}
	c.JSON(http.StatusOK, items)
}
