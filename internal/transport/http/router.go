package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/habitflow-dev/habitflow/internal/transport/http/handler"
	"github.com/habitflow-dev/habitflow/internal/transport/http/middleware"
)

// NewRouter wires middleware and routes. Everything except signup and
// signin sits behind JWT auth.
func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	habitHandler *handler.HabitHandler,
	historyHandler *handler.HistoryHandler,
	reportHandler *handler.ReportHandler,
	jwtKey []byte,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.Security())

	r.POST("/auth/signup", authHandler.SignUp)
	r.POST("/auth/signin", authHandler.SignIn)

	authed := r.Group("/", middleware.Auth(jwtKey))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.POST("/habits", habitHandler.Create)
		authed.GET("/habits", habitHandler.List)
		authed.GET("/habits/history", historyHandler.General)
		authed.GET("/habits/:id", habitHandler.GetByID)
		authed.PATCH("/habits/:id", habitHandler.Update)
		authed.DELETE("/habits/:id", habitHandler.Delete)

		authed.POST("/habits/:id/check", habitHandler.CheckIn)
		authed.POST("/habits/:id/time", habitHandler.LogTime)
		authed.GET("/habits/:id/history", historyHandler.ForHabit)
		authed.DELETE("/habits/check/:id", habitHandler.DeleteCheckIn)
		authed.DELETE("/habits/time/:id", habitHandler.DeleteTimeEntry)

		authed.GET("/reports/dashboard", reportHandler.Dashboard)
		authed.GET("/reports/heatmap", reportHandler.Heatmap)
	}

	return r
}
