package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitflow-dev/habitflow/internal/domain"
	"github.com/habitflow-dev/habitflow/internal/repository"
	"github.com/habitflow-dev/habitflow/internal/transport/http/middleware"
	"github.com/habitflow-dev/habitflow/internal/usecase"
)

type habitUsecaser interface {
	Create(ctx context.Context, input usecase.CreateHabitInput) (*domain.Habit, error)
	Get(ctx context.Context, habitID, userID string) (*domain.Habit, error)
	Update(ctx context.Context, habitID, userID string, upd repository.HabitUpdate) (*domain.Habit, error)
	Delete(ctx context.Context, habitID, userID string) error
	CheckIn(ctx context.Context, habitID, userID string) (*domain.CheckIn, error)
	LogTime(ctx context.Context, habitID, userID string, start, end time.Time) (*domain.TimeEntry, error)
	RemoveCheckIn(ctx context.Context, checkInID, userID string) error
	RemoveTimeEntry(ctx context.Context, entryID, userID string) error
	List(ctx context.Context, input usecase.ListHabitsInput) (usecase.ListHabitsResult, error)
}

type HabitHandler struct {
	uc     habitUsecaser
	logger *slog.Logger
}

func NewHabitHandler(uc habitUsecaser, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{uc: uc, logger: logger.With("component", "habit_handler")}
}

type createHabitRequest struct {
	Name          string   `json:"name"           binding:"required,max=256"`
	GoalType      string   `json:"goal_type"      binding:"required,oneof=COUNT DURATION"`
	GoalValue     int      `json:"goal_value"     binding:"required,gt=0"`
	DaysOfWeek    []int    `json:"days_of_week"   binding:"required,min=1,dive,min=0,max=6"`
	ReminderTimes []string `json:"reminder_times" binding:"omitempty,dive,datetime=15:04"`
}

type habitResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	GoalType      string    `json:"goal_type"`
	GoalValue     int       `json:"goal_value"`
	DaysOfWeek    []int     `json:"days_of_week"`
	ReminderTimes []string  `json:"reminder_times"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toHabitResponse(h *domain.Habit) habitResponse {
	return habitResponse{
		ID:            h.ID,
		Name:          h.Name,
		GoalType:      string(h.GoalType),
		GoalValue:     h.GoalValue,
		DaysOfWeek:    h.DaysOfWeek,
		ReminderTimes: h.ReminderTimes,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

type checkInResponse struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

func toCheckInResponse(c *domain.CheckIn) checkInResponse {
	return checkInResponse{ID: c.ID, HabitID: c.HabitID, Timestamp: c.Timestamp, CreatedAt: c.CreatedAt}
}

type timeEntryResponse struct {
	ID              string    `json:"id"`
	HabitID         string    `json:"habit_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

func toTimeEntryResponse(e *domain.TimeEntry) timeEntryResponse {
	return timeEntryResponse{
		ID:              e.ID,
		HabitID:         e.HabitID,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes,
		CreatedAt:       e.CreatedAt,
	}
}

// POST /habits
func (h *HabitHandler) Create(c *gin.Context) {
	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.uc.Create(c.Request.Context(), usecase.CreateHabitInput{
		UserID:        c.GetString(middleware.UserIDKey),
		Name:          req.Name,
		GoalType:      domain.GoalType(req.GoalType),
		GoalValue:     req.GoalValue,
		DaysOfWeek:    req.DaysOfWeek,
		ReminderTimes: req.ReminderTimes,
	})
	if err != nil {
		h.logger.Error("create habit", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, toHabitResponse(habit))
}

type listHabitsQuery struct {
	Page     int    `form:"page"      binding:"omitempty,min=1"`
	PerPage  int    `form:"perPage"   binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	GoalType string `form:"goal_type" binding:"omitempty,oneof=COUNT DURATION"`
	Order    string `form:"order"     binding:"omitempty,oneof=asc desc"`
}

type listMetaResponse struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	PerPage  int `json:"perPage"`
	LastPage int `json:"lastPage"`
}

// GET /habits
func (h *HabitHandler) List(c *gin.Context) {
	var q listHabitsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.uc.List(c.Request.Context(), usecase.ListHabitsInput{
		UserID:   c.GetString(middleware.UserIDKey),
		Page:     q.Page,
		PerPage:  q.PerPage,
		Search:   q.Search,
		GoalType: domain.GoalType(q.GoalType),
		OrderAsc: q.Order == "asc",
	})
	if err != nil {
		h.logger.Error("list habits", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]habitResponse, 0, len(result.Habits))
	for _, habit := range result.Habits {
		items = append(items, toHabitResponse(habit))
	}
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": listMetaResponse{
			Total:    result.Meta.Total,
			Page:     result.Meta.Page,
			PerPage:  result.Meta.PerPage,
			LastPage: result.Meta.LastPage,
		},
	})
}

// GET /habits/:id
func (h *HabitHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	habit, err := h.uc.Get(c.Request.Context(), id, c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
			return
		}
		h.logger.Error("get habit", "habit_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toHabitResponse(habit))
}

type updateHabitRequest struct {
	Name          *string  `json:"name"           binding:"omitempty,max=256"`
	GoalValue     *int     `json:"goal_value"     binding:"omitempty,gt=0"`
	DaysOfWeek    []int    `json:"days_of_week"   binding:"omitempty,min=1,dive,min=0,max=6"`
	ReminderTimes []string `json:"reminder_times" binding:"omitempty,dive,datetime=15:04"`
}

// PATCH /habits/:id
func (h *HabitHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	var req updateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.uc.Update(c.Request.Context(), id, c.GetString(middleware.UserIDKey), repository.HabitUpdate{
		Name:          req.Name,
		GoalValue:     req.GoalValue,
		DaysOfWeek:    req.DaysOfWeek,
		ReminderTimes: req.ReminderTimes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
			return
		}
		h.logger.Error("update habit", "habit_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toHabitResponse(habit))
}

// DELETE /habits/:id
func (h *HabitHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id, c.GetString(middleware.UserIDKey)); err != nil {
		if errors.Is(err, domain.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
			return
		}
		h.logger.Error("delete habit", "habit_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /habits/:id/check
func (h *HabitHandler) CheckIn(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	checkIn, err := h.uc.CheckIn(c.Request.Context(), id, c.GetString(middleware.UserIDKey))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		case errors.Is(err, domain.ErrGoalTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": errCountHabitOnly})
		default:
			h.logger.Error("check in", "habit_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, toCheckInResponse(checkIn))
}

type logTimeRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"   binding:"required"`
}

// POST /habits/:id/time
func (h *HabitHandler) LogTime(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		return
	}

	var req logTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.uc.LogTime(c.Request.Context(), id, c.GetString(middleware.UserIDKey), req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errHabitNotFound})
		case errors.Is(err, domain.ErrGoalTypeMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": errDurationHabitOnly})
		case errors.Is(err, domain.ErrSessionTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": errSessionTooShort})
		default:
			h.logger.Error("log time", "habit_id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, toTimeEntryResponse(entry))
}

// DELETE /habits/check/:id
func (h *HabitHandler) DeleteCheckIn(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errCheckInNotFound})
		return
	}

	if err := h.uc.RemoveCheckIn(c.Request.Context(), id, c.GetString(middleware.UserIDKey)); err != nil {
		if errors.Is(err, domain.ErrCheckInNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errCheckInNotFound})
			return
		}
		h.logger.Error("delete check-in", "checkin_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}

// DELETE /habits/time/:id
func (h *HabitHandler) DeleteTimeEntry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errTimeEntryNotFound})
		return
	}

	if err := h.uc.RemoveTimeEntry(c.Request.Context(), id, c.GetString(middleware.UserIDKey)); err != nil {
		if errors.Is(err, domain.ErrTimeEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errTimeEntryNotFound})
			return
		}
		h.logger.Error("delete time entry", "entry_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.Status(http.StatusNoContent)
}
