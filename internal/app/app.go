// Package app wires configuration, the backend facade, the content cache and
// the HTTP surface into one runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/config"
	"github.com/kmabtech/web/internal/middleware"
	"github.com/kmabtech/web/internal/modules/content"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	pkgcron "github.com/kmabtech/web/internal/pkg/cron"
	"github.com/kmabtech/web/internal/pkg/jwt"
	pkgredis "github.com/kmabtech/web/internal/pkg/redis"
	"github.com/kmabtech/web/internal/templates"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *content.Store
	redis  *pkgredis.Client
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application dependencies and registers all routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.SessionSecret)

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if rc == nil {
		logger.Info("redis not configured, snapshot persistence disabled")
	}

	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTokenSource(apiclient.ContextTokenSource()))
	facade := backend.New(client)
	store := content.NewStore(facade, logger, rc)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	tpl, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	router.SetHTMLTemplate(tpl)

	staticFS, err := templates.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New()
	sched.Register(pkgcron.Job{
		Name:     contentRefreshJob,
		Interval: cfg.RefreshInterval,
		Fn:       store.RefreshAll,
	})
	go sched.Start(ctx)

	// Warm the cache without blocking startup; pages fall back to a
	// synchronous fetch while cold.
	go func() {
		if err := store.RefreshAll(ctx); err != nil {
			logger.Warn("initial content refresh incomplete", zap.Error(err))
		}
	}()

	app := &App{cfg: cfg, router: router, store: store, redis: rc, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes()

	return app, nil
}

const contentRefreshJob = "content-refresh"

// triggerRefresh kicks the content refresh job outside its schedule, used by
// the admin dashboard's refresh action.
func (a *App) triggerRefresh(ctx context.Context) error {
	return a.sched.Run(ctx, contentRefreshJob)
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }
