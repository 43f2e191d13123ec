package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Roland-02/List2Letterboxd/internal/audit"
	"github.com/Roland-02/List2Letterboxd/internal/config"
	"github.com/Roland-02/List2Letterboxd/internal/database"
	auditrepo "github.com/Roland-02/List2Letterboxd/internal/database/audit"
	"github.com/Roland-02/List2Letterboxd/internal/database/sessions"
	"github.com/Roland-02/List2Letterboxd/internal/exporters"
	http_controllers "github.com/Roland-02/List2Letterboxd/internal/http"
	"github.com/Roland-02/List2Letterboxd/internal/parsers"
	"github.com/Roland-02/List2Letterboxd/internal/scheduler"
	"github.com/Roland-02/List2Letterboxd/internal/services"
	"github.com/Roland-02/List2Letterboxd/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT; SIGKILL can't be caught
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting List2Letterboxd v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	sessionRepo := sessions.NewRepository(db.DB)

	backend, err := services.NewMatchBackend(cfg.Match, cfg.TMDB, cfg.Cache, "")
	if err != nil {
		log.Fatalf("Failed to initialize matching: %v", err)
	}
	defer backend.Close()

	if backend.Service == nil {
		log.Printf("WARNING: Neither MATCH_SERVICE_URL nor TMDB_TOKEN is set. Entries will stay unresolved.")
	} else {
		log.Printf("Matching against: %s", backend.Description)
	}

	parserOptions := parsers.Options{LegacyInlineSplit: cfg.Parser.LegacyInlineSplit}
	service := services.NewImportService(
		parserOptions,
		backend.Merger(cfg.Match),
		sessionRepo,
		exporters.NewLetterboxdCSV(cfg.Export.BreakMarker),
	)
	service.SetActivityLogger(auditService)

	if cfg.Audit.Enabled {
		service.SetSnapshotSaver(audit.NewAuditor(cfg.Audit.Dir))
		log.Printf("Saving raw import snapshots to %s", cfg.Audit.Dir)
	}

	retention := scheduler.NewRetentionScheduler(
		scheduler.RetentionConfig{
			Enabled:  cfg.Retention.Enabled,
			Schedule: cfg.Retention.Schedule,
			MaxAge:   cfg.Retention.MaxAge,
		},
		sessionRepo,
		auditService,
		auditService,
	)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			EnrichTimeout:   cfg.Tasks.EnrichTimeout,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewEnrichSessionQueue(service, taskCfg.EnrichTimeout),
			tasks.NewPurgeExpiredQueue(retention),
		)
		retention.SetTaskEnqueuer(taskClient)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	retentionCtx, retentionCancel := context.WithCancel(context.Background())
	defer retentionCancel()
	if err := retention.Start(retentionCtx); err != nil {
		log.Fatalf("Failed to start retention scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Pipeline:  service,
		Sessions:  service,
		Database:  db,
		AuditLog:  auditService,
		Retention: retention,
		Version:   version,
	}
	// Interface fields must stay nil, not typed-nil, for their routes to be skipped
	if backend.Matcher != nil {
		routerCfg.Matcher = backend.Matcher
	}
	if taskClient != nil {
		routerCfg.TaskQueue = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		retention.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
