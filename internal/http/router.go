package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Routes whose optional dependency is missing from cfg are not registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version, cfg.Matcher != nil)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Match service contract
	matchService := NewMatchServiceController(cfg.Matcher)
	router.POST("/tmdb/match", matchService.Match)

	api := router.Group("/api")

	if cfg.Pipeline != nil {
		pipeline := NewPipelineController(cfg.Pipeline)
		api.POST("/parse", pipeline.Parse)
		api.POST("/match", pipeline.Match)
		api.POST("/export", pipeline.Export)
	}

	if cfg.Sessions != nil {
		sessions := NewSessionsController(cfg.Sessions, cfg.TaskQueue)
		api.POST("/sessions", sessions.Create)
		api.GET("/sessions", sessions.List)
		api.GET("/sessions/:id", sessions.Get)
		api.DELETE("/sessions/:id", sessions.Delete)
		api.POST("/sessions/:id/enrich", sessions.Enrich)
		api.GET("/sessions/:id/export", sessions.Export)
	}

	if cfg.AuditLog != nil {
		audit := NewAuditController(cfg.AuditLog)
		api.GET("/audit/events", audit.GetAuditEvents)
		api.GET("/sessions/:id/history", audit.GetSessionHistory)
	}

	tasksController := NewTasksController(cfg.TaskQueue, cfg.Retention)
	if cfg.TaskQueue != nil {
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}
	if cfg.Retention != nil {
		api.POST("/retention/run", tasksController.RunRetention)
	}

	return router
}
