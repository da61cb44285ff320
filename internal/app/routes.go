package app

import (
	"time"

	"github.com/kmabtech/web/internal/middleware"
	"github.com/kmabtech/web/internal/modules/admin"
	"github.com/kmabtech/web/internal/modules/public"
)

func (a *App) registerRoutes() {
	contactLimit := middleware.FormLimit(a.redis, a.logger, 5, time.Minute)
	loginLimit := middleware.FormLimit(a.redis, a.logger, 10, time.Minute)

	pub := public.NewHandler(a.store, a.cfg.SiteName, a.logger)
	pub.RegisterRoutes(a.router, contactLimit)
	a.router.NoRoute(pub.NotFound)

	adm := admin.NewHandler(a.store, a.triggerRefresh, a.logger)
	adm.RegisterRoutes(a.router, middleware.AdminGuard(admin.LoginPath), loginLimit)
}
