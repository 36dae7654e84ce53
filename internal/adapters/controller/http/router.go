package http

import (
	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/adapters/controller/http/handlers"
	"github.com/studyhive/studyhive-backend/internal/adapters/controller/http/middlewares"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/pkg/logger"
)

// NewRouter wires all handlers into a gin engine. Everything under
// /planner requires a resolved identity.
func NewRouter(
	auth *service.AuthService,
	events *service.EventService,
	alerts *service.AlertService,
	tasks *service.TaskService,
	log *logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	authHandler := handlers.NewAuthHandler(auth, log)
	eventHandler := handlers.NewEventHandler(events, log)
	plannerHandler := handlers.NewPlannerHandler(events, alerts, log)
	taskHandler := handlers.NewTaskHandler(tasks, log)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	planner := r.Group("/planner")
	planner.Use(middlewares.Auth(auth))
	{
		planner.GET("/upcoming-deadlines", plannerHandler.UpcomingDeadlines)
		planner.GET("/alerts", plannerHandler.Alerts)
		planner.POST("/alerts/:id/read", plannerHandler.MarkAlertRead)

		planner.POST("/events", eventHandler.Create)
		planner.GET("/events", eventHandler.List)
		planner.GET("/events/export", eventHandler.Export)
		planner.DELETE("/events/:id", eventHandler.Delete)

		planner.POST("/tasks", taskHandler.Create)
		planner.GET("/tasks", taskHandler.List)
		planner.PATCH("/tasks/:id", taskHandler.Patch)
		planner.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return r
}
