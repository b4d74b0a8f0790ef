package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/minutemind/internal/adapter/dto/common"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	environment     string
	authHandler     *Auth
	meetingHandler  *Meeting
	taskHandler     *Task
	conflictHandler *Conflict
	webhookHandler  *WebhookHandler
	authMiddleware  echo.MiddlewareFunc
	checks          map[string]HealthCheck
	logger          *zap.Logger
}

// RouterConfig carries everything the router mounts. AuthMiddleware may be
// nil, in which case the API is open.
type RouterConfig struct {
	Environment    string
	Auth           *Auth
	Meeting        *Meeting
	Task           *Task
	Conflict       *Conflict
	Webhook        *WebhookHandler
	AuthMiddleware echo.MiddlewareFunc
	HealthChecks   map[string]HealthCheck
	Logger         *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		environment:     cfg.Environment,
		authHandler:     cfg.Auth,
		meetingHandler:  cfg.Meeting,
		taskHandler:     cfg.Task,
		conflictHandler: cfg.Conflict,
		webhookHandler:  cfg.Webhook,
		authMiddleware:  cfg.AuthMiddleware,
		checks:          cfg.HealthChecks,
		logger:          cfg.Logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// Public routes
	rt.setupAuthRoutes(v1)
	rt.setupWebhookRoutes(v1)

	// Operator routes
	protected := v1.Group("")
	if rt.authMiddleware != nil {
		protected.Use(rt.authMiddleware)
	}
	rt.setupMeetingRoutes(protected)
	rt.setupTaskRoutes(protected)
	rt.setupConflictRoutes(protected)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/logout", rt.authHandler.Logout)
}

func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	g.POST("/webhooks/assemblyai", rt.webhookHandler.HandleAssemblyAIWebhook)
}

func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("/:id", rt.meetingHandler.GetMeeting)
	meetings.DELETE("/:id", rt.meetingHandler.DeleteMeeting)
	meetings.POST("/:id/analysis", rt.meetingHandler.IngestAnalysis)
	meetings.POST("/:id/transcript", rt.meetingHandler.AnalyzeTranscript)
	meetings.POST("/:id/recording", rt.meetingHandler.UploadRecording)

	g.POST("/analysis/extract", rt.meetingHandler.ExtractAnalysis)
}

func (rt *Router) setupTaskRoutes(g *echo.Group) {
	tasks := g.Group("/tasks")
	tasks.GET("", rt.taskHandler.ListTasks)
	tasks.POST("", rt.taskHandler.CreateTask)
	tasks.PATCH("/:id", rt.taskHandler.UpdateTask)
	tasks.DELETE("/:id", rt.taskHandler.DeleteTask)
	tasks.POST("/:id/advance", rt.taskHandler.AdvanceTask)
}

func (rt *Router) setupConflictRoutes(g *echo.Group) {
	conflicts := g.Group("/conflicts")
	conflicts.GET("", rt.conflictHandler.ListConflicts)
	conflicts.POST("", rt.conflictHandler.CreateConflict)
	conflicts.PATCH("/:id", rt.conflictHandler.UpdateConflict)
	conflicts.DELETE("/:id", rt.conflictHandler.DeleteConflict)
}

// healthCheck returns health status
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  common.HealthResponse
// @Failure      503  {object}  common.HealthResponse
// @Router       /health [get]
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.environment,
	}
	status := http.StatusOK

	if len(rt.checks) > 0 {
		resp.Checks = make(map[string]string, len(rt.checks))
		for name, check := range rt.checks {
			if err := check(ctx); err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
	}

	return c.JSON(status, resp)
}
