package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/habitflow-dev/habitflow/internal/transport/http/middleware"
	"github.com/habitflow-dev/habitflow/internal/usecase"
)

type reportUsecaser interface {
	GetDashboard(ctx context.Context, userID string, start, end *time.Time) (*usecase.Dashboard, error)
	GetHeatmap(ctx context.Context, userID, habitID string, start, end *time.Time) ([]time.Time, error)
}

type ReportHandler struct {
	uc     reportUsecaser
	logger *slog.Logger
}

func NewReportHandler(uc reportUsecaser, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, logger: logger.With("component", "report_handler")}
}

type periodResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type dashboardResponse struct {
	Period      periodResponse `json:"period"`
	TotalHabits int            `json:"totalHabits"`
	CheckIns    int            `json:"checkIns"`
	Minutes     int            `json:"minutes"`
}

// GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
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

	dashboard, err := h.uc.GetDashboard(c.Request.Context(), c.GetString(middleware.UserIDKey), start, end)
	if err != nil {
		h.logger.Error("dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{
		Period:      periodResponse{Start: dashboard.Period.Start, End: dashboard.Period.End},
		TotalHabits: dashboard.TotalHabits,
		CheckIns:    dashboard.CheckIns,
		Minutes:     dashboard.Minutes,
	})
}

type heatmapQuery struct {
	dateRangeQuery
	HabitID string `form:"habitId" binding:"omitempty,uuid"`
}

// GET /reports/heatmap
//
// Every event in range contributes one date; two events on the same day
// yield two entries.
func (h *ReportHandler) Heatmap(c *gin.Context) {
	var q heatmapQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := q.bounds()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dates, err := h.uc.GetHeatmap(c.Request.Context(), c.GetString(middleware.UserIDKey), q.HabitID, start, end)
	if err != nil {
		h.logger.Error("heatmap", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	if dates == nil {
		dates = []time.Time{}
	}
	c.JSON(http.StatusOK, dates)
}
