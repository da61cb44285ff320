// Package admin serves the back-office: login, dashboard, contact messages,
// and one generic CRUD screen per content resource.
package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/modules/admin/crud"
	"github.com/kmabtech/web/internal/modules/content"
	"github.com/kmabtech/web/internal/pkg/apiclient"
	"github.com/kmabtech/web/internal/pkg/flash"
	"github.com/kmabtech/web/internal/pkg/session"
	"go.uber.org/zap"
)

const LoginPath = "/admin/login"

type Handler struct {
	store   *content.Store
	refresh func(ctx context.Context) error
	logger  *zap.Logger
}

// NewHandler creates the admin handler. refresh triggers a content refresh
// out of band, wired to the scheduler's manual-run entry point.
func NewHandler(store *content.Store, refresh func(ctx context.Context) error, logger *zap.Logger) *Handler {
	return &Handler{store: store, refresh: refresh, logger: logger}
}

// RegisterRoutes mounts the admin area. authMW guards everything except the
// login screen; loginLimit throttles credential guessing.
func (h *Handler) RegisterRoutes(r *gin.Engine, authMW, loginLimit gin.HandlerFunc) {
	r.GET(LoginPath, h.loginPage)
	r.POST(LoginPath, loginLimit, h.login)

	g := r.Group("/admin", authMW)
	g.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
	g.GET("/dashboard", h.dashboard)
	g.POST("/refresh", h.refreshContent)
	g.GET("/messages", h.messages)
	g.POST("/messages/:id/delete", h.deleteMessage)
	g.POST("/logout", h.logout)

	for _, res := range Resources(h.store) {
		crud.NewHandler(res, h.store.Facade.UploadImage, h.store.Facade.ResolveAssetURL, LoginPath, h.logger).RegisterRoutes(g)
	}
}

func (h *Handler) loginPage(c *gin.Context) {
	if session.Token(c) != "" {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{"Email": ""})
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, err := h.store.Facade.Login(c.Request.Context(), email, password)
	if err != nil {
		msg := "Giriş yapılamadı. Lütfen tekrar deneyin."
		switch {
		case errors.Is(err, backend.ErrInvalidCredentials):
			msg = "E-posta veya şifre hatalı."
		case errors.Is(err, backend.ErrUnreachable):
			msg = "Sunucuya bağlanılamadı."
		}
		h.logger.Warn("admin login failed", zap.String("email", email), zap.Error(err))
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"Error": msg, "Email": email})
		return
	}

	if err := session.Issue(c, token, email, session.DefaultTTL); err != nil {
		h.logger.Error("session issue failed", zap.Error(err))
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"Error": "Oturum başlatılamadı.", "Email": email})
		return
	}
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	session.Clear(c)
	c.Redirect(http.StatusFound, LoginPath)
}

func (h *Handler) dashboard(c *gin.Context) {
	stats, err := h.store.Facade.GetDashboardStats(c.Request.Context())
	if err != nil {
		if h.unauthorized(c, err) {
			return
		}
		c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
			"AdminEmail": session.Email(c),
			"Error":      "İstatistikler yüklenemedi.",
		})
		return
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"AdminEmail": session.Email(c),
		"Stats":      stats,
		"Flash":      flash.Pop(c),
	})
}

// refreshContent kicks the background content refresh immediately instead of
// waiting for the next scheduled run.
func (h *Handler) refreshContent(c *gin.Context) {
	if err := h.refresh(c.Request.Context()); err != nil {
		h.logger.Warn("manual content refresh failed", zap.Error(err))
		flash.Set(c, flash.KindError, "Yenileme başlatılamadı.")
	} else {
		flash.Set(c, flash.KindSuccess, "İçerik yenileme başlatıldı.")
	}
	c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

func (h *Handler) messages(c *gin.Context) {
	msgs, err := h.store.Facade.ListContactMessages(c.Request.Context())
	if err != nil {
		if h.unauthorized(c, err) {
			return
		}
		c.HTML(http.StatusOK, "admin_messages.html", gin.H{
			"AdminEmail": session.Email(c),
			"Error":      "Mesajlar yüklenemedi.",
		})
		return
	}
	c.HTML(http.StatusOK, "admin_messages.html", gin.H{
		"AdminEmail": session.Email(c),
		"Messages":   msgs,
		"Flash":      flash.Pop(c),
	})
}

func (h *Handler) deleteMessage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		flash.Set(c, flash.KindError, "Geçersiz mesaj.")
		c.Redirect(http.StatusSeeOther, "/admin/messages")
		return
	}
	if err := h.store.Facade.DeleteContactMessage(c.Request.Context(), id); err != nil {
		if h.unauthorized(c, err) {
			return
		}
		h.logger.Warn("message delete failed", zap.Int("id", id), zap.Error(err))
		flash.Set(c, flash.KindError, "Mesaj silinemedi.")
		c.Redirect(http.StatusSeeOther, "/admin/messages")
		return
	}
	flash.Set(c, flash.KindSuccess, "Mesaj silindi.")
	c.Redirect(http.StatusSeeOther, "/admin/messages")
}

func (h *Handler) unauthorized(c *gin.Context, err error) bool {
	if !apiclient.IsStatus(err, http.StatusUnauthorized) {
		return false
	}
	session.Clear(c)
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
	return true
}
