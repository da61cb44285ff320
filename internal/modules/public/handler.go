// Package public serves the visitor-facing pages. Everything renders from
// the content store's cached collections except the detail pages, which hit
// the backend directly so a missing id yields a real 404.
package public

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kmabtech/web/internal/backend"
	"github.com/kmabtech/web/internal/modules/content"
	"github.com/kmabtech/web/internal/modules/processing/markdown"
	"github.com/kmabtech/web/internal/pkg/flash"
	"go.uber.org/zap"
)

type Handler struct {
	store    *content.Store
	logger   *zap.Logger
	siteName string
}

func NewHandler(store *content.Store, siteName string, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger, siteName: siteName}
}

// RegisterRoutes mounts the visitor pages. formLimit throttles contact form
// submissions.
func (h *Handler) RegisterRoutes(r *gin.Engine, formLimit gin.HandlerFunc) {
	r.GET("/", h.home)
	r.GET("/services", h.services)
	r.GET("/products", h.products)
	r.GET("/products/:id", h.productDetail)
	r.GET("/blog", h.blog)
	r.GET("/blog/:id", h.blogDetail)
	r.GET("/contact", h.contactPage)
	r.POST("/contact", formLimit, h.contactSubmit)
}

func (h *Handler) base(c *gin.Context) gin.H {
	return gin.H{
		"SiteName": h.siteName,
		"AssetURL": h.store.Facade.ResolveAssetURL,
		"Flash":    flash.Pop(c),
	}
}

func (h *Handler) home(c *gin.Context) {
	ctx := c.Request.Context()
	data := h.base(c)

	if services, err := h.store.Services.Get(ctx); err == nil {
		data["Services"] = services
	}
	if references, err := h.store.References.Get(ctx); err == nil {
		data["References"] = references
	}
	if posts, err := h.store.BlogPosts.Get(ctx); err == nil {
		if len(posts) > 3 {
			posts = posts[:3]
		}
		data["LatestPosts"] = posts
	}
	c.HTML(http.StatusOK, "home.html", data)
}

func (h *Handler) services(c *gin.Context) {
	data := h.base(c)
	services, err := h.store.Services.Get(c.Request.Context())
	if err != nil {
		data["Error"] = "Hizmetler şu anda yüklenemiyor."
	}
	data["Services"] = services
	c.HTML(http.StatusOK, "services.html", data)
}

func (h *Handler) products(c *gin.Context) {
	ctx := c.Request.Context()
	data := h.base(c)

	products, err := h.store.Products.Get(ctx)
	if err != nil {
		data["Error"] = "Ürünler şu anda yüklenemiyor."
		c.HTML(http.StatusOK, "products.html", data)
		return
	}
	categories, _ := h.store.Categories.Get(ctx)

	filter := FilterFromQuery(c.Query("q"), c.Query("category"), c.Query("color"))
	data["Products"] = filter.Apply(products)
	data["Categories"] = categories
	data["Colors"] = Colors(products)
	data["Filter"] = filter
	c.HTML(http.StatusOK, "products.html", data)
}

func (h *Handler) productDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.notFound(c)
		return
	}
	p, err := h.store.Facade.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logger.Warn("product detail fetch failed", zap.Int("id", id), zap.Error(err))
		h.errorPage(c, "Ürün şu anda yüklenemiyor.")
		return
	}
	data := h.base(c)
	data["Product"] = p
	c.HTML(http.StatusOK, "product_detail.html", data)
}

func (h *Handler) blog(c *gin.Context) {
	data := h.base(c)
	posts, err := h.store.BlogPosts.Get(c.Request.Context())
	if err != nil {
		data["Error"] = "Yazılar şu anda yüklenemiyor."
	}
	data["Posts"] = posts
	c.HTML(http.StatusOK, "blog.html", data)
}

func (h *Handler) blogDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		h.notFound(c)
		return
	}
	post, err := h.store.Facade.GetBlogPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.logger.Warn("blog detail fetch failed", zap.Int("id", id), zap.Error(err))
		h.errorPage(c, "Yazı şu anda yüklenemiyor.")
		return
	}

	body, err := markdown.RenderBody(post.ContentTr)
	if err != nil {
		h.logger.Warn("blog body render failed", zap.Int("id", id), zap.Error(err))
	}

	data := h.base(c)
	data["Post"] = post
	data["Body"] = body
	data["Tags"] = splitTags(post.Tags)
	c.HTML(http.StatusOK, "blog_detail.html", data)
}

func (h *Handler) contactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", h.base(c))
}

func (h *Handler) contactSubmit(c *gin.Context) {
	msg := backend.ContactMessage{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Phone:   strings.TrimSpace(c.PostForm("phone")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}

	data := h.base(c)
	data["Form"] = msg
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		data["Error"] = "Ad, e-posta ve mesaj alanları zorunludur."
		c.HTML(http.StatusOK, "contact.html", data)
		return
	}

	if err := h.store.Facade.CreateContactMessage(c.Request.Context(), msg); err != nil {
		h.logger.Warn("contact submit failed", zap.Error(err))
		data["Error"] = "Mesajınız gönderilemedi. Lütfen tekrar deneyin."
		c.HTML(http.StatusOK, "contact.html", data)
		return
	}
	flash.Set(c, flash.KindSuccess, "Mesajınız alındı. En kısa sürede dönüş yapacağız.")
	c.Redirect(http.StatusSeeOther, "/contact")
}

// NotFound renders the 404 page; also wired as the router's NoRoute handler.
func (h *Handler) NotFound(c *gin.Context) { h.notFound(c) }

func (h *Handler) notFound(c *gin.Context) {
	data := h.base(c)
	c.HTML(http.StatusNotFound, "notfound.html", data)
}

func (h *Handler) errorPage(c *gin.Context, msg string) {
	data := h.base(c)
	data["Message"] = msg
	c.HTML(http.StatusOK, "error.html", data)
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
